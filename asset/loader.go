package asset

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/milk9111/spriteanim/anim"
	"gopkg.in/yaml.v3"
)

// ClipSpec is one entry of the clips map in an animation document.
type ClipSpec struct {
	Start     int     `yaml:"start"`
	Len       int     `yaml:"len"`
	FrameTime float64 `yaml:"frame_time"`
	Mode      string  `yaml:"mode"`
	Next      string  `yaml:"next"`
}

// DocumentSpec is the YAML shape of an animation document.
type DocumentSpec struct {
	Image      string              `yaml:"image"`
	TileSize   int                 `yaml:"tile_size"`
	TileWidth  int                 `yaml:"tile_width"`
	TileHeight int                 `yaml:"tile_height"`
	Columns    int                 `yaml:"columns"`
	Rows       int                 `yaml:"rows"`
	Clips      map[string]ClipSpec `yaml:"clips"`
}

// Loader decodes animation documents into definitions.
type Loader struct {
	// Read fetches a document by name. Defaults to os.ReadFile.
	Read func(name string) ([]byte, error)
}

func NewLoader(read func(name string) ([]byte, error)) *Loader {
	return &Loader{Read: read}
}

// Load reads and decodes the document at name. A relative image path is
// resolved against the document's directory.
func (l *Loader) Load(name string) (*anim.Definition, error) {
	read := os.ReadFile
	if l != nil && l.Read != nil {
		read = l.Read
	}
	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("asset: load %s: %w", name, err)
	}
	def, err := Decode(data, documentDir(name))
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", name, err)
	}
	return def, nil
}

// Decode builds a definition from YAML bytes.
func Decode(data []byte, dir string) (*anim.Definition, error) {
	var spec DocumentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("asset: unmarshal: %w", err)
	}
	return spec.Definition(dir)
}

// Definition converts the document, applying defaults for missing clip fields.
func (s DocumentSpec) Definition(dir string) (*anim.Definition, error) {
	if len(s.Clips) == 0 {
		return nil, fmt.Errorf("asset: no clips: %w", anim.ErrMalformedDefinition)
	}

	atlas := anim.Atlas{
		Image:      s.Image,
		TileWidth:  s.TileWidth,
		TileHeight: s.TileHeight,
		Columns:    s.Columns,
		Rows:       s.Rows,
	}
	if atlas.TileWidth == 0 {
		atlas.TileWidth = s.TileSize
	}
	if atlas.TileHeight == 0 {
		atlas.TileHeight = s.TileSize
	}
	if atlas.Image != "" && dir != "" && !filepath.IsAbs(atlas.Image) {
		atlas.Image = path.Join(dir, filepath.ToSlash(atlas.Image))
	}

	clips := make(map[string]anim.Meta, len(s.Clips))
	next := make(map[string]string)
	for name, c := range s.Clips {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("asset: empty clip name: %w", anim.ErrMalformedDefinition)
		}
		meta, err := c.meta()
		if err != nil {
			return nil, fmt.Errorf("asset: clip %q: %w", name, err)
		}
		clips[name] = meta
		if c.Next != "" {
			next[name] = strings.TrimSpace(c.Next)
		}
	}

	return anim.NewDefinition(atlas, clips, next)
}

func (c ClipSpec) meta() (anim.Meta, error) {
	meta := anim.DefaultMeta()
	meta.Start = c.Start
	if c.Len != 0 {
		meta.Len = c.Len
	}
	if c.FrameTime != 0 {
		meta.FrameTime = anim.Seconds(c.FrameTime)
	}
	mode, err := anim.ParseMode(c.Mode)
	if err != nil {
		return anim.Meta{}, err
	}
	meta.Mode = mode
	return meta, nil
}

func documentDir(name string) string {
	dir := path.Dir(filepath.ToSlash(name))
	if dir == "." {
		return ""
	}
	return dir
}
