package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/ecs"
	"github.com/milk9111/spriteanim/ecs/component"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "react.tengo")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func scriptedFixture(t *testing.T) (*fixture, *ClipScriptSystem) {
	t.Helper()
	f := newFixture(t, 1)
	scripts := NewClipScriptSystem(f.lib, nil)
	f.w.AddSystem(scripts)
	return f, scripts
}

func (f *fixture) spawnScripted(t *testing.T, clip, path string) actor {
	t.Helper()
	a := f.spawn(t, f.h, clip)
	if err := ecs.Add(f.w, a.e, component.ClipScriptComponent.Kind(), &component.ClipScript{Path: path}); err != nil {
		t.Fatal(err)
	}
	return a
}

const walkUnlessDead = `
if finished != "death" {
	change = "walk"
}
`

func TestClipScriptReactsToFinished(t *testing.T) {
	cases := []struct {
		name      string
		clip      string
		requested string
	}{
		{"fire_returns_to_walk", "fire", "walk"},
		{"death_stays", "death", "death"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeScript(t, walkUnlessDead)
			f, _ := scriptedFixture(t)
			a := f.spawnScripted(t, c.clip, path)

			f.tick(time.Second)
			if got := a.state.Requested(); got != anim.IDOf(c.requested) {
				t.Fatalf("expected requested %s, got %v", c.requested, got)
			}

			f.tick(0)
			if a.anim.Clip != anim.IDOf(c.requested) {
				t.Fatalf("expected playing %s, got %v", c.requested, a.anim.Clip)
			}
		})
	}
}

func TestClipScriptQueue(t *testing.T) {
	path := writeScript(t, `queue = "crawl"`)
	f, _ := scriptedFixture(t)
	a := f.spawnScripted(t, "death", path)

	f.tick(time.Second)
	if q, ok := a.state.Queued(); !ok || q != anim.IDOf("crawl") {
		t.Fatalf("expected crawl queued, got %v %v", q, ok)
	}
	// A paused clip only leaves through an explicit change.
	f.tick(time.Second)
	if a.anim.Clip != anim.IDOf("death") || !a.anim.Paused {
		t.Fatalf("expected death to stay paused, got %v paused=%v", a.anim.Clip, a.anim.Paused)
	}
}

func TestClipScriptIgnoresOtherEntities(t *testing.T) {
	path := writeScript(t, walkUnlessDead)
	f, _ := scriptedFixture(t)
	plain := f.spawn(t, f.h, "fire")
	scripted := f.spawnScripted(t, "fire", path)

	f.tick(time.Second)
	if got := plain.state.Requested(); got != anim.IDOf("fire") {
		t.Fatalf("entity without script changed to %v", got)
	}
	if got := scripted.state.Requested(); got != anim.IDOf("walk") {
		t.Fatalf("scripted entity should request walk, got %v", got)
	}
}

func TestClipScriptErrorsAreLogged(t *testing.T) {
	path := writeScript(t, `change = `)
	f, _ := scriptedFixture(t)
	buf := captureLog(t)
	a := f.spawnScripted(t, "fire", path)

	f.tick(time.Second)
	if !strings.Contains(buf.String(), "compile") {
		t.Fatalf("expected compile error logged, got %q", buf.String())
	}
	if got := a.state.Requested(); got != anim.IDOf("fire") {
		t.Fatalf("broken script changed state to %v", got)
	}
}

func TestClipScriptInvalidate(t *testing.T) {
	path := writeScript(t, walkUnlessDead)
	f, scripts := scriptedFixture(t)
	a := f.spawnScripted(t, "fire", path)
	f.tick(time.Second)
	if !a.state.Is(anim.Name("walk")) {
		t.Fatal("expected walk after first script")
	}

	if err := os.WriteFile(path, []byte(`change = "idle"`), 0o644); err != nil {
		t.Fatal(err)
	}
	scripts.Invalidate(path)

	a.state.ChangeNow(anim.Name("fire"))
	f.tick(time.Second)
	if !a.state.Is(anim.Name("idle")) {
		t.Fatalf("expected reloaded script to request idle, got %v", a.state.Requested())
	}
}
