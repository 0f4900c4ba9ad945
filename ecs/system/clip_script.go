package system

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

// ClipScriptSystem runs an entity's ClipScript whenever one of its clips
// finishes. The script sees:
//
//	finished  name of the clip that finished
//	entity    the entity id
//
// and may assign clip names to `change` (switch now) or `queue`.
// It must run after the animation stages in the same tick.
type ClipScriptSystem struct {
	Library *asset.Library
	// Load reads script source. Defaults to os.ReadFile.
	Load func(path string) ([]byte, error)

	mu    sync.Mutex
	cache map[string]*tengo.Compiled
}

func NewClipScriptSystem(lib *asset.Library, load func(path string) ([]byte, error)) *ClipScriptSystem {
	return &ClipScriptSystem{Library: lib, Load: load}
}

// Invalidate drops the compiled script for path so it is read again on next
// use.
func (s *ClipScriptSystem) Invalidate(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
}

func (s *ClipScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, fin := range w.Events().Finished() {
		script, ok := ecs.Get(w, fin.Entity, component.ClipScriptComponent.Kind())
		if !ok || strings.TrimSpace(script.Path) == "" {
			continue
		}
		state, ok := ecs.Get(w, fin.Entity, component.AnimationStateComponent.Kind())
		if !ok {
			continue
		}
		name := fin.Clip.String()
		if a, ok := ecs.Get(w, fin.Entity, component.AnimatedComponent.Kind()); ok && s.Library != nil {
			if def, ok := s.Library.Resolve(a.Handle); ok {
				name = def.Label(fin.Clip)
			}
		}
		if err := s.run(script.Path, fin.Entity, name, state); err != nil {
			logf("script: entity=%v %s: %v", fin.Entity, script.Path, err)
		}
	}
}

func (s *ClipScriptSystem) run(path string, e ecs.Entity, finished string, state *component.AnimationState) error {
	compiled, err := s.compiled(path)
	if err != nil {
		return err
	}
	c := compiled.Clone()
	if err := c.Set("finished", finished); err != nil {
		return err
	}
	if err := c.Set("entity", int64(e)); err != nil {
		return err
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if change := strings.TrimSpace(c.Get("change").String()); change != "" {
		state.ChangeNow(anim.Name(change))
	}
	if queue := strings.TrimSpace(c.Get("queue").String()); queue != "" {
		state.Queue(anim.Name(queue))
	}
	return nil
}

func (s *ClipScriptSystem) compiled(path string) (*tengo.Compiled, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cache[path]; ok {
		return c, nil
	}

	load := s.Load
	if load == nil {
		load = os.ReadFile
	}
	src, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("finished", "")
	_ = script.Add("entity", 0)
	_ = script.Add("change", "")
	_ = script.Add("queue", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if s.cache == nil {
		s.cache = make(map[string]*tengo.Compiled)
	}
	s.cache[path] = compiled
	return compiled, nil
}
