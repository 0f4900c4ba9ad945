package ecs

// smallest returns the store with the fewest entries, or nil if any is
// missing.
func smallest(stores ...store) store {
	var best store
	for _, s := range stores {
		if s == nil {
			return nil
		}
		if best == nil || s.len() < best.len() {
			best = s
		}
	}
	return best
}

// intersect returns slot ids present in every store, iterating the smallest.
func intersect(stores ...store) []entityID {
	base := smallest(stores...)
	if base == nil {
		return nil
	}
	ids := base.ids()
	out := make([]entityID, 0, len(ids))
outer:
	for _, id := range ids {
		for _, s := range stores {
			if s != base && !s.has(id) {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}
