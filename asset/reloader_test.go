package asset

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/spriteanim/anim"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(log.New(&buf, "", 0))
	t.Cleanup(func() { SetLogger(log.Default()) })
	return &buf
}

func TestReloaderApply(t *testing.T) {
	buf := captureLog(t)
	files := map[string]string{"hero.yaml": "clips:\n  idle:\n    len: 2\n"}
	lib := NewLibrary()
	r := NewReloader(lib, NewLoader(memReader(files)))

	h, err := r.Open("./hero.yaml")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	lib.Drain()

	files["hero.yaml"] = "clips:\n  idle:\n    len: 4\n  run:\n    len: 2\n"
	if !r.Apply("hero.yaml") {
		t.Fatal("expected reload")
	}
	def, _ := lib.Resolve(h)
	if _, ok := def.Clip(anim.IDOf("run")); !ok {
		t.Fatal("reload did not replace the definition")
	}
	if ev := lib.Drain(); len(ev) != 1 || ev[0].Kind != EventModified {
		t.Fatalf("want one modified event got %v", ev)
	}

	files["hero.yaml"] = "clips: {"
	if r.Apply("hero.yaml") {
		t.Fatal("broken document should not apply")
	}
	if cur, _ := lib.Resolve(h); cur != def {
		t.Fatal("broken reload must keep the previous definition")
	}
	if !strings.Contains(buf.String(), "keeping previous content") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}

	if r.Apply("other.yaml") {
		t.Fatal("unregistered documents are ignored")
	}
}

func TestReloaderOpenMissing(t *testing.T) {
	files := map[string]string{}
	lib := NewLibrary()
	r := NewReloader(lib, NewLoader(memReader(files)))

	h, err := r.Open("late.yaml")
	if err == nil {
		t.Fatal("expected load error")
	}
	if h == InvalidHandle {
		t.Fatal("handle should be issued even when loading fails")
	}
	if _, ok := lib.Resolve(h); ok {
		t.Fatal("handle should not resolve yet")
	}

	files["late.yaml"] = "clips:\n  idle: {}\n"
	if !r.Apply("late.yaml") {
		t.Fatal("expected reload")
	}
	if ev := lib.Drain(); len(ev) != 1 || ev[0].Kind != EventLoaded {
		t.Fatalf("want one loaded event got %v", ev)
	}
}

func TestReloaderPoll(t *testing.T) {
	buf := captureLog(t)
	files := map[string]string{"hero.yaml": "clips:\n  idle: {}\n"}
	lib := NewLibrary()
	r := NewReloader(lib, NewLoader(memReader(files)))
	if _, err := r.Open("hero.yaml"); err != nil {
		t.Fatalf("open: %v", err)
	}

	var scripts []string
	r.OnScript = func(path string) { scripts = append(scripts, path) }

	w := &Watcher{Events: make(chan string, 4), Errors: make(chan error, 1)}
	w.Events <- "hero.yaml"
	w.Events <- "scripts/hero.tengo"
	w.Errors <- os.ErrPermission

	if n := r.Poll(w); n != 1 {
		t.Fatalf("want 1 applied got %d", n)
	}
	if len(scripts) != 1 || scripts[0] != filepath.Clean("scripts/hero.tengo") {
		t.Fatalf("unexpected scripts %v", scripts)
	}
	if !strings.Contains(buf.String(), "watcher") {
		t.Fatalf("expected watcher error to be logged, got %q", buf.String())
	}
	if n := r.Poll(w); n != 0 {
		t.Fatalf("empty poll applied %d", n)
	}

	close(w.Events)
	if n := r.Poll(w); n != 0 {
		t.Fatalf("closed watcher applied %d", n)
	}
}

func TestReloaderRunStopsOnCancel(t *testing.T) {
	lib := NewLibrary()
	r := NewReloader(lib, nil)
	w := &Watcher{Events: make(chan string), Errors: make(chan error)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, w) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("want context.Canceled got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
