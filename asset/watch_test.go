package asset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsDocuments(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(dir, "hero.yaml")
	if err := os.WriteFile(doc, []byte("clips: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got != filepath.Clean(doc) {
				t.Fatalf("unexpected event %q", got)
			}
			return
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatal("no event for the document")
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatal("events channel should be closed")
	}
}

func TestFileKinds(t *testing.T) {
	tests := []struct {
		path   string
		doc    bool
		script bool
	}{
		{"a/hero.yaml", true, false},
		{"hero.YML", true, false},
		{"scripts/hero.tengo", false, true},
		{"hero.png", false, false},
	}
	for _, tc := range tests {
		if IsDocumentFile(tc.path) != tc.doc || IsScriptFile(tc.path) != tc.script {
			t.Fatalf("%s: unexpected classification", tc.path)
		}
	}
}
