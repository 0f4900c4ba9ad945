package system

import (
	"errors"
	"time"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// AnimationAdvanceSystem moves playback forward by the world's delta time
// and writes the frame to display into the entity's Sprite.
type AnimationAdvanceSystem struct {
	Library *asset.Library
	Workers int
}

type advanceRow struct {
	e      ecs.Entity
	anim   *component.Animated
	state  *component.AnimationState
	sprite *component.Sprite
}

func (s *AnimationAdvanceSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	var rows []advanceRow
	ecs.ForEach(w, component.AnimatedComponent.Kind(), func(e ecs.Entity, a *component.Animated) {
		state, _ := ecs.Get(w, e, component.AnimationStateComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		rows = append(rows, advanceRow{e: e, anim: a, state: state, sprite: sprite})
	})

	events := w.Events()
	parallel(rows, s.Workers, func(r advanceRow) {
		if s.advance(r.e, r.anim, r.state, dt) {
			events.Push(ecs.Event{
				Type: ecs.EventAnimationFinished,
				Data: ecs.AnimationFinishedEvent{Entity: r.e, Clip: r.anim.Clip},
			})
		}
		if r.sprite != nil {
			r.sprite.Index = r.anim.Index()
		}
	})
}

// advance steps a by dt and reports whether its clip finished this tick.
func (s *AnimationAdvanceSystem) advance(e ecs.Entity, a *component.Animated, state *component.AnimationState, dt time.Duration) bool {
	if !a.Ready || a.Paused || a.Meta.FrameTime <= 0 {
		return false
	}

	a.Elapsed += dt
	crossed := a.Elapsed / a.Meta.FrameTime
	if crossed == 0 {
		return false
	}
	a.Elapsed -= crossed * a.Meta.FrameTime
	a.Frame += int(crossed)
	if a.Frame < a.Meta.Len {
		return false
	}

	if s.follow(e, a, state) {
		return false
	}

	switch a.Meta.Mode {
	case anim.Once:
		a.Frame = a.Meta.Last()
		a.Elapsed = 0
		a.Paused = true
		return true
	default:
		a.Frame %= a.Meta.Len
		return false
	}
}

// follow adopts the queued clip if there is one other than the clip that
// just completed.
func (s *AnimationAdvanceSystem) follow(e ecs.Entity, a *component.Animated, state *component.AnimationState) bool {
	if state == nil || s.Library == nil {
		return false
	}
	queued, ok := state.Queued()
	if !ok || queued == a.Clip {
		return false
	}
	meta, err := resolve(s.Library, e, a, queued, "follow-up")
	if err != nil {
		if errors.Is(err, anim.ErrClipNotFound) {
			state.QueueChecked(queued, false)
		}
		return false
	}
	a.Play(queued, meta)
	state.Advanced(queued, queued, armFor(queued, meta))
	return true
}
