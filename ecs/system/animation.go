package system

import (
	"errors"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
	"golang.org/x/sync/errgroup"
)

// minRowsPerWorker keeps tiny worlds on the calling goroutine.
const minRowsPerWorker = 64

// AnimationSystem runs the three animation stages in order: reload, change,
// advance. Each stage finishes for every entity before the next starts.
type AnimationSystem struct {
	Reload  *AnimationReloadSystem
	Change  *AnimationChangeSystem
	Advance *AnimationAdvanceSystem
}

// NewAnimationSystem builds the pipeline over lib. workers > 1 spreads each
// stage across that many goroutines.
func NewAnimationSystem(lib *asset.Library, workers int) *AnimationSystem {
	return &AnimationSystem{
		Reload:  &AnimationReloadSystem{Library: lib, Workers: workers},
		Change:  &AnimationChangeSystem{Library: lib, Workers: workers},
		Advance: &AnimationAdvanceSystem{Library: lib, Workers: workers},
	}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.Reload.Update(w)
	s.Change.Update(w)
	s.Advance.Update(w)
}

type animRow struct {
	e     ecs.Entity
	anim  *component.Animated
	state *component.AnimationState
}

func animRows(w *ecs.World) []animRow {
	var rows []animRow
	ecs.ForEach2(w, component.AnimatedComponent.Kind(), component.AnimationStateComponent.Kind(), func(e ecs.Entity, a *component.Animated, s *component.AnimationState) {
		rows = append(rows, animRow{e: e, anim: a, state: s})
	})
	return rows
}

// parallel calls fn for every row. With workers > 1 rows are split into
// contiguous chunks, one goroutine each; fn must only touch its own row.
func parallel[R any](rows []R, workers int, fn func(R)) {
	if workers <= 1 || len(rows) < 2*minRowsPerWorker {
		for _, r := range rows {
			fn(r)
		}
		return
	}
	chunk := (len(rows) + workers - 1) / workers
	if chunk < minRowsPerWorker {
		chunk = minRowsPerWorker
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(rows); start += chunk {
		part := rows[start:min(start+chunk, len(rows))]
		g.Go(func() error {
			for _, r := range part {
				fn(r)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// resolve looks id up for a, logging a miss once per occurrence.
func resolve(lib *asset.Library, e ecs.Entity, a *component.Animated, id anim.ID, what string) (anim.Meta, error) {
	meta, err := lib.ResolveClip(a.Handle, id)
	if err == nil {
		return meta, nil
	}
	kind := component.MissNotFound
	if errors.Is(err, anim.ErrDefinitionNotReady) {
		kind = component.MissNotReady
	}
	if a.NoteMiss(kind, id) {
		logf("animation: entity=%v %s %v: %v", e, what, id, err)
	}
	return anim.Meta{}, err
}

// armFor is the clip queued automatically when id starts playing: the
// clip's default follow-up, or the clip itself for repeating clips so a
// finished cycle keeps looping.
func armFor(id anim.ID, meta anim.Meta) anim.ID {
	if meta.Next != anim.NoClip {
		return meta.Next
	}
	if meta.Mode == anim.Repeating {
		return id
	}
	return anim.NoClip
}
