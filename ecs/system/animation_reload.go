package system

import (
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
)

// AnimationReloadSystem forces entities whose definition was replaced to
// resolve their requested clip again.
type AnimationReloadSystem struct {
	Library *asset.Library
	Workers int
	// OnEvent, if set, sees every library event drained by the system.
	OnEvent func(asset.Event)
}

func (s *AnimationReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.Library == nil {
		return
	}
	events := s.Library.Drain()
	if len(events) == 0 {
		return
	}

	modified := make(map[asset.Handle]struct{})
	for _, evt := range events {
		if s.OnEvent != nil {
			s.OnEvent(evt)
		}
		if evt.Kind == asset.EventModified {
			modified[evt.Handle] = struct{}{}
		}
	}
	if len(modified) == 0 {
		return
	}

	parallel(animRows(w), s.Workers, func(r animRow) {
		if _, ok := modified[r.anim.Handle]; ok {
			r.state.MarkDirty()
		}
	})
	for h := range modified {
		logf("animation: %v modified, resyncing entities", h)
	}
}
