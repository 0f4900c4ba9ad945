package system

import (
	"errors"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// AnimationChangeSystem applies requested clip changes. A request that
// cannot be resolved leaves playback as it was; one whose definition is not
// loaded yet is retried every tick.
type AnimationChangeSystem struct {
	Library *asset.Library
	Workers int
}

func (s *AnimationChangeSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Library == nil {
		return
	}
	parallel(animRows(w), s.Workers, func(r animRow) {
		s.apply(r.e, r.anim, r.state)
	})
}

func (s *AnimationChangeSystem) apply(e ecs.Entity, a *component.Animated, state *component.AnimationState) {
	snap := state.Snapshot()
	if snap.Dirty && snap.Requested != anim.NoClip {
		meta, err := resolve(s.Library, e, a, snap.Requested, "change to")
		switch {
		case err == nil:
			a.Play(snap.Requested, meta)
			state.Applied(snap.Generation, armFor(snap.Requested, meta))
		case errors.Is(err, anim.ErrDefinitionNotReady):
		default:
			state.Abandon(snap.Generation)
		}
	} else if snap.Dirty {
		state.Abandon(snap.Generation)
	}

	snap = state.Snapshot()
	if !snap.QueueCheck {
		return
	}
	def, ok := s.Library.Resolve(a.Handle)
	if !ok {
		return
	}
	if _, ok := def.Clip(snap.Queued); !ok {
		logf("animation: entity=%v queued %s: %v", e, def.Label(snap.Queued), anim.ErrClipNotFound)
		state.QueueChecked(snap.Queued, false)
		return
	}
	state.QueueChecked(snap.Queued, true)
}
