package asset

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/milk9111/spriteanim/anim"
)

// Handle is a stable reference to an animation asset. Its content may be
// swapped on reload; the handle itself never changes.
type Handle uint32

// InvalidHandle never resolves.
const InvalidHandle Handle = 0

func (h Handle) String() string {
	return "anim#" + strconv.FormatUint(uint64(h), 10)
}

// EventKind distinguishes first loads from in-place replacements.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventModified
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventModified:
		return "modified"
	case EventRemoved:
		return "removed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event reports a change to the content behind a handle.
type Event struct {
	Kind   EventKind
	Handle Handle
}

type slot struct {
	key string
	def atomic.Pointer[anim.Definition]
}

// Library owns every animation definition. Resolve is safe to call from any
// goroutine while another goroutine replaces content.
type Library struct {
	mu     sync.RWMutex
	slots  []*slot
	byKey  map[string]Handle
	events []Event
}

func NewLibrary() *Library {
	return &Library{byKey: make(map[string]Handle)}
}

// Handle returns the handle registered for key, creating an empty (not yet
// loaded) slot if needed.
func (l *Library) Handle(key string) Handle {
	if l == nil {
		return InvalidHandle
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if h, ok := l.byKey[key]; ok {
		return h
	}
	l.slots = append(l.slots, &slot{key: key})
	h := Handle(len(l.slots))
	l.byKey[key] = h
	return h
}

// Lookup returns the handle for key without creating one.
func (l *Library) Lookup(key string) (Handle, bool) {
	if l == nil {
		return InvalidHandle, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	h, ok := l.byKey[key]
	return h, ok
}

// Key returns the key a handle was registered under.
func (l *Library) Key(h Handle) (string, bool) {
	s := l.slot(h)
	if s == nil {
		return "", false
	}
	return s.key, true
}

// Add registers def under key and returns its handle.
func (l *Library) Add(key string, def *anim.Definition) Handle {
	h := l.Handle(key)
	l.Set(h, def)
	return h
}

// Set swaps the content behind h. The first set emits EventLoaded, later
// ones EventModified. Setting nil unloads the handle.
func (l *Library) Set(h Handle, def *anim.Definition) bool {
	s := l.slot(h)
	if s == nil {
		return false
	}
	prev := s.def.Swap(def)

	var kind EventKind
	switch {
	case def == nil && prev == nil:
		return true
	case def == nil:
		kind = EventRemoved
	case prev == nil:
		kind = EventLoaded
	default:
		kind = EventModified
	}

	l.mu.Lock()
	l.events = append(l.events, Event{Kind: kind, Handle: h})
	l.mu.Unlock()
	return true
}

// Resolve returns the current definition behind h, or false if h is unknown
// or not loaded yet.
func (l *Library) Resolve(h Handle) (*anim.Definition, bool) {
	s := l.slot(h)
	if s == nil {
		return nil, false
	}
	def := s.def.Load()
	return def, def != nil
}

// ResolveClip resolves h and then id. Misses wrap anim.ErrDefinitionNotReady
// or anim.ErrClipNotFound.
func (l *Library) ResolveClip(h Handle, id anim.ID) (anim.Meta, error) {
	def, ok := l.Resolve(h)
	if !ok {
		return anim.Meta{}, fmt.Errorf("asset: resolve %v: %w", h, anim.ErrDefinitionNotReady)
	}
	meta, ok := def.Clip(id)
	if !ok {
		return anim.Meta{}, fmt.Errorf("asset: resolve %v in %v: %w", def.Label(id), h, anim.ErrClipNotFound)
	}
	return meta, nil
}

// Drain returns the events recorded since the last call.
func (l *Library) Drain() []Event {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return nil
	}
	out := l.events
	l.events = nil
	return out
}

func (l *Library) slot(h Handle) *slot {
	if l == nil || h == InvalidHandle {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if int(h) > len(l.slots) {
		return nil
	}
	return l.slots[h-1]
}
