package ecs

import (
	"time"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/ecs/component"
)

// World owns entities, their components and the system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]store
	scheduler Scheduler
	events    EventQueue

	delta time.Duration
	ticks uint64
}

// NewWorld creates an empty ECS world.
func NewWorld(systems ...System) *World {
	w := &World{stores: make(map[component.ComponentID]store)}
	for _, s := range systems {
		w.AddSystem(s)
	}
	return w
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update runs every system once with dt as the tick's delta time. Events
// pushed during the previous tick are discarded first, so observers can read
// this tick's events after Update returns.
func (w *World) Update(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.events.flush()
	w.delta = dt
	w.ticks++
	w.scheduler.Update(w)
}

// UpdateSeconds is Update with a delta in float seconds.
func (w *World) UpdateSeconds(dt float64) {
	w.Update(anim.Seconds(dt))
}

// Delta is the delta time of the tick being processed.
func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

// Ticks counts Update calls.
func (w *World) Ticks() uint64 {
	if w == nil {
		return 0
	}
	return w.ticks
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) removeAll(id entityID) {
	for _, s := range w.stores {
		s.remove(id)
	}
}
