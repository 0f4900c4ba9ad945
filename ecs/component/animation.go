package component

import (
	"time"

	"github.com/milk9111/spriteanim/anim"
	"github.com/milk9111/spriteanim/asset"
)

// MissKind classifies why a clip could not be resolved.
type MissKind int

const (
	MissNone MissKind = iota
	MissNotReady
	MissNotFound
)

// Animated is the playback half of an animated entity. Only the animation
// systems write it.
type Animated struct {
	Handle asset.Handle

	// Clip and Meta are a copy of the clip being played. Meta never points
	// back into the definition.
	Clip    anim.ID
	Meta    anim.Meta
	Frame   int
	Elapsed time.Duration
	Paused  bool
	// Ready is false until the first clip resolves.
	Ready bool

	missKind MissKind
	missClip anim.ID
}

// NewAnimated returns playback state bound to h showing a one-frame
// placeholder until the first clip resolves.
func NewAnimated(h asset.Handle) *Animated {
	return &Animated{Handle: h, Meta: anim.DefaultMeta()}
}

// Index is the atlas frame to display.
func (a *Animated) Index() int {
	return a.Meta.Start + a.Frame
}

// Play switches to meta from its first frame.
func (a *Animated) Play(id anim.ID, meta anim.Meta) {
	a.Clip = id
	a.Meta = meta
	a.Frame = 0
	a.Elapsed = 0
	a.Paused = false
	a.Ready = true
	a.ClearMiss()
}

// NoteMiss records a resolution miss and reports whether it differs from the
// last one recorded, so callers log each occurrence once.
func (a *Animated) NoteMiss(kind MissKind, clip anim.ID) bool {
	if a.missKind == kind && a.missClip == clip {
		return false
	}
	a.missKind = kind
	a.missClip = clip
	return true
}

func (a *Animated) ClearMiss() {
	a.missKind = MissNone
	a.missClip = anim.NoClip
}

var AnimatedComponent = NewComponent[Animated]()
