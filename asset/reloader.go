package asset

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   = log.Default()
)

// SetLogger replaces the package logger. Passing nil discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func logf(format string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	l.Printf(format, args...)
}

// Reloader applies file change notifications to a library. Documents are
// keyed in the library by their cleaned path.
type Reloader struct {
	lib    *Library
	loader *Loader
	// OnScript, if set, receives changed script paths.
	OnScript func(path string)
}

func NewReloader(lib *Library, loader *Loader) *Reloader {
	if loader == nil {
		loader = NewLoader(nil)
	}
	return &Reloader{lib: lib, loader: loader}
}

// Open registers path in the library and loads it. The handle is returned
// even when loading fails so entities can be spawned against it; it resolves
// once a later reload succeeds.
func (r *Reloader) Open(path string) (Handle, error) {
	key := filepath.Clean(path)
	h := r.lib.Handle(key)
	def, err := r.loader.Load(key)
	if err != nil {
		return h, err
	}
	r.lib.Set(h, def)
	return h, nil
}

// Apply reloads the document at path if it is registered. A failed reload
// keeps the previous content.
func (r *Reloader) Apply(path string) bool {
	key := filepath.Clean(path)
	if IsScriptFile(key) {
		if r.OnScript != nil {
			r.OnScript(key)
		}
		return false
	}
	h, ok := r.lib.Lookup(key)
	if !ok {
		return false
	}
	def, err := r.loader.Load(key)
	if err != nil {
		logf("asset: reload %s failed, keeping previous content: %v", key, err)
		return false
	}
	r.lib.Set(h, def)
	logf("asset: reloaded %s (%v, %d clips)", key, h, def.Len())
	return true
}

// Poll applies every pending watcher event without blocking. Call it between
// ticks from the goroutine that drives the world.
func (r *Reloader) Poll(w *Watcher) int {
	if w == nil {
		return 0
	}
	applied := 0
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return applied
			}
			if r.Apply(path) {
				applied++
			}
		case err, ok := <-w.Errors:
			if !ok {
				return applied
			}
			logf("asset: watcher: %v", err)
		default:
			return applied
		}
	}
}

// Run applies watcher events until ctx is done or the watcher closes.
func (r *Reloader) Run(ctx context.Context, w *Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			r.Apply(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logf("asset: watcher: %v", err)
		}
	}
}
