package anim

import (
	"fmt"
	"image"
	"sort"
)

// Atlas is the frame grid shared by every clip of a definition. Frames are
// numbered row-major starting at the top-left tile.
type Atlas struct {
	Image      string
	TileWidth  int
	TileHeight int
	Columns    int
	Rows       int
}

// Frames returns the number of tiles in the grid.
func (a Atlas) Frames() int {
	if a.Columns <= 0 || a.Rows <= 0 {
		return 0
	}
	return a.Columns * a.Rows
}

// Region maps a frame index to its pixel rectangle on the atlas image.
func (a Atlas) Region(index int) (image.Rectangle, bool) {
	if index < 0 || index >= a.Frames() || a.TileWidth <= 0 || a.TileHeight <= 0 {
		return image.Rectangle{}, false
	}
	x := (index % a.Columns) * a.TileWidth
	y := (index / a.Columns) * a.TileHeight
	return image.Rect(x, y, x+a.TileWidth, y+a.TileHeight), true
}

// Definition is an immutable table of clips over one atlas. It is built once
// and replaced wholesale on reload; nothing mutates it after NewDefinition.
type Definition struct {
	clips map[ID]Meta
	names map[ID]string
	atlas Atlas
}

// NewDefinition validates clips and derives their IDs. Follow-up names in
// next are resolved against the same table.
func NewDefinition(atlas Atlas, clips map[string]Meta, next map[string]string) (*Definition, error) {
	d := &Definition{
		clips: make(map[ID]Meta, len(clips)),
		names: make(map[ID]string, len(clips)),
		atlas: atlas,
	}

	names := make([]string, 0, len(clips))
	for name := range clips {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		meta := clips[name]
		if err := meta.Validate(); err != nil {
			return nil, fmt.Errorf("anim: clip %q: %w", name, err)
		}
		if frames := atlas.Frames(); frames > 0 && meta.Start+meta.Len > frames {
			return nil, fmt.Errorf("anim: clip %q spans frames %d..%d past atlas of %d: %w",
				name, meta.Start, meta.Start+meta.Len-1, frames, ErrMalformedDefinition)
		}
		id := IDOf(name)
		if other, ok := d.names[id]; ok {
			return nil, fmt.Errorf("anim: %q and %q: %w", other, name, ErrClipIDCollision)
		}
		d.clips[id] = meta
		d.names[id] = name
	}

	for name, target := range next {
		if target == "" {
			continue
		}
		id := IDOf(name)
		meta, ok := d.clips[id]
		if !ok {
			return nil, fmt.Errorf("anim: follow-up for unknown clip %q: %w", name, ErrMalformedDefinition)
		}
		nextID := IDOf(target)
		if _, ok := d.clips[nextID]; !ok {
			return nil, fmt.Errorf("anim: clip %q follow-up %q: %w", name, target, ErrClipNotFound)
		}
		meta.Next = nextID
		d.clips[id] = meta
	}

	return d, nil
}

// Clip looks up a clip by ID.
func (d *Definition) Clip(id ID) (Meta, bool) {
	if d == nil {
		return Meta{}, false
	}
	m, ok := d.clips[id]
	return m, ok
}

// NameOf returns the source name of id, for diagnostics.
func (d *Definition) NameOf(id ID) (string, bool) {
	if d == nil {
		return "", false
	}
	n, ok := d.names[id]
	return n, ok
}

// Label is NameOf with a fallback to the numeric ID.
func (d *Definition) Label(id ID) string {
	if n, ok := d.NameOf(id); ok {
		return n
	}
	return id.String()
}

// Names returns clip names sorted alphabetically.
func (d *Definition) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.names))
	for _, n := range d.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (d *Definition) Len() int {
	if d == nil {
		return 0
	}
	return len(d.clips)
}

func (d *Definition) Atlas() Atlas {
	if d == nil {
		return Atlas{}
	}
	return d.atlas
}
