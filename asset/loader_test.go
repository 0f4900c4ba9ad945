package asset

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/milk9111/spriteanim/anim"
)

const heroDoc = `
image: hero.png
tile_size: 32
columns: 4
rows: 2
clips:
  idle:
    start: 0
    len: 2
    frame_time: 0.25
  slash:
    start: 2
    len: 3
    frame_time: 0.05
    mode: once
    next: idle
  blink:
    start: 7
`

func memReader(files map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		data, ok := files[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(data), nil
	}
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(memReader(map[string]string{"anims/hero.yaml": heroDoc}))
	def, err := loader.Load("anims/hero.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	atlas := def.Atlas()
	if atlas.Image != "anims/hero.png" {
		t.Fatalf("image should resolve next to the document, got %q", atlas.Image)
	}
	if atlas.TileWidth != 32 || atlas.TileHeight != 32 || atlas.Frames() != 8 {
		t.Fatalf("unexpected atlas %+v", atlas)
	}

	tests := []struct {
		name string
		want anim.Meta
	}{
		{"idle", anim.Meta{Start: 0, Len: 2, FrameTime: 250 * time.Millisecond, Mode: anim.Repeating}},
		{"slash", anim.Meta{Start: 2, Len: 3, FrameTime: 50 * time.Millisecond, Mode: anim.Once, Next: anim.IDOf("idle")}},
		{"blink", anim.Meta{Start: 7, Len: 1, FrameTime: 100 * time.Millisecond, Mode: anim.Repeating}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := def.Clip(anim.IDOf(tc.name))
			if !ok {
				t.Fatalf("clip %q missing", tc.name)
			}
			if got != tc.want {
				t.Fatalf("want %+v got %+v", tc.want, got)
			}
		})
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no_clips", "image: a.png\n", anim.ErrMalformedDefinition},
		{"bad_mode", "clips:\n  a:\n    mode: sideways\n", anim.ErrMalformedDefinition},
		{"negative_len", "clips:\n  a:\n    len: -2\n", anim.ErrMalformedDefinition},
		{"unknown_next", "clips:\n  a:\n    next: b\n", anim.ErrClipNotFound},
		{"past_atlas", "columns: 2\nrows: 1\nclips:\n  a:\n    start: 1\n    len: 2\n", anim.ErrMalformedDefinition},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc), "")
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}

	if _, err := Decode([]byte("clips: [1, 2"), ""); err == nil {
		t.Fatal("expected a yaml error")
	}

	loader := NewLoader(memReader(nil))
	if _, err := loader.Load("missing.yaml"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist got %v", err)
	}
}
