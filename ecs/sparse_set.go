package ecs

// store is the type-erased view of a sparseSet the world keeps per kind.
type store interface {
	has(id entityID) bool
	remove(id entityID) bool
	ids() []entityID
	len() int
}

// sparseSet is cache-friendly storage for one component type keyed by slot id.
type sparseSet[T any] struct {
	denseIDs    []entityID
	denseValues []*T
	sparse      []int
}

func (s *sparseSet[T]) has(id entityID) bool {
	if id == 0 || int(id-1) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	if !s.has(id) {
		return nil, false
	}
	return s.denseValues[s.sparse[id-1]], true
}

func (s *sparseSet[T]) set(id entityID, v *T) {
	if id == 0 {
		return
	}
	for int(id-1) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = s.denseIDs[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	s.denseValues[last] = nil
	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet[T]) ids() []entityID {
	return s.denseIDs
}

func (s *sparseSet[T]) len() int {
	return len(s.denseIDs)
}
