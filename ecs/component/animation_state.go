package component

import (
	"sync"

	"github.com/milk9111/spriteanim/anim"
)

// AnimationState is the requested half of an animated entity: which clip it
// should play and what follows it. Gameplay code mutates it at any time, from
// any goroutine; the animation systems pick changes up on the next tick.
type AnimationState struct {
	mu         sync.Mutex
	requested  anim.ID
	queued     anim.ID
	dirty      bool
	queueCheck bool
	generation uint64
}

// NewAnimationState requests initial, to be applied on the first tick.
func NewAnimationState(initial anim.Ref) *AnimationState {
	s := &AnimationState{}
	if initial != nil {
		s.requested = initial.ClipID()
	}
	s.dirty = s.requested != anim.NoClip
	return s
}

// ChangeNow switches to ref on the next tick, restarting it even if it is
// already playing. Any queued clip is discarded.
func (s *AnimationState) ChangeNow(ref anim.Ref) {
	if ref == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = ref.ClipID()
	s.queued = anim.NoClip
	s.queueCheck = false
	s.touch()
}

// ChangeIfNew is ChangeNow unless ref is already the requested clip.
func (s *AnimationState) ChangeIfNew(ref anim.Ref) bool {
	if ref == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := ref.ClipID()
	if id == s.requested {
		return false
	}
	s.requested = id
	s.queued = anim.NoClip
	s.queueCheck = false
	s.touch()
	return true
}

// Queue plays ref after the current clip completes naturally.
func (s *AnimationState) Queue(ref anim.Ref) {
	if ref == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = ref.ClipID()
	s.queueCheck = s.queued != anim.NoClip
}

func (s *AnimationState) ClearQueue() {
	s.mu.Lock()
	s.queued = anim.NoClip
	s.queueCheck = false
	s.mu.Unlock()
}

func (s *AnimationState) Requested() anim.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested
}

// Is reports whether ref is the requested clip.
func (s *AnimationState) Is(ref anim.Ref) bool {
	return ref != nil && s.Requested() == ref.ClipID()
}

func (s *AnimationState) Queued() (anim.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queued, s.queued != anim.NoClip
}

// Generation increments on every requested-clip write and forced resync.
func (s *AnimationState) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// MarkDirty forces the requested clip to be resolved again next tick.
func (s *AnimationState) MarkDirty() {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
}

func (s *AnimationState) touch() {
	s.dirty = true
	s.generation++
}

// StateSnapshot is a consistent read of AnimationState for the systems.
type StateSnapshot struct {
	Requested  anim.ID
	Queued     anim.ID
	Dirty      bool
	QueueCheck bool
	Generation uint64
}

func (s *AnimationState) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StateSnapshot{
		Requested:  s.requested,
		Queued:     s.queued,
		Dirty:      s.dirty,
		QueueCheck: s.queueCheck,
		Generation: s.generation,
	}
}

// Applied clears the dirty flag if nothing was requested since gen was
// read. When arm is set and nothing is queued, arm becomes the queued clip.
func (s *AnimationState) Applied(gen uint64, arm anim.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.dirty = false
	if arm != anim.NoClip && s.queued == anim.NoClip {
		s.queued = arm
		s.queueCheck = false
	}
	return true
}

// Abandon clears the dirty flag for gen without changing anything else.
func (s *AnimationState) Abandon(gen uint64) {
	s.mu.Lock()
	if s.generation == gen {
		s.dirty = false
	}
	s.mu.Unlock()
}

// QueueChecked marks the queued clip id as validated. If rejected, the queue
// is dropped. Either way nothing happens if the queue changed since.
func (s *AnimationState) QueueChecked(id anim.ID, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queued != id {
		return
	}
	s.queueCheck = false
	if !ok {
		s.queued = anim.NoClip
	}
}

// Advanced records that playback moved on to id through the queue. The
// queued clip is replaced by next only if it is still from, so a Queue call
// made meanwhile wins.
func (s *AnimationState) Advanced(id, from, next anim.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		return
	}
	s.requested = id
	if s.queued == from {
		s.queued = next
		s.queueCheck = false
	}
}

var AnimationStateComponent = NewComponent[AnimationState]()
