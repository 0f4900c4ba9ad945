package ecs

import (
	"sync"

	"github.com/milk9111/spriteanim/anim"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventAnimationFinished is the Type of events carrying AnimationFinishedEvent.
const EventAnimationFinished = "animation_finished"

// AnimationFinishedEvent is emitted when a clip completes with nothing left
// to play after it.
type AnimationFinishedEvent struct {
	Entity Entity
	Clip   anim.ID
}

// EventQueue is a FIFO queue safe for concurrent pushes.
type EventQueue struct {
	mu    sync.Mutex
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, evt)
	q.mu.Unlock()
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns a copy of the pending events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Event(nil), q.items...)
}

// Finished returns the pending animation finished events without clearing
// the queue.
func (q *EventQueue) Finished() []AnimationFinishedEvent {
	var out []AnimationFinishedEvent
	for _, evt := range q.Peek() {
		if fin, ok := evt.Data.(AnimationFinishedEvent); ok && evt.Type == EventAnimationFinished {
			out = append(out, fin)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
