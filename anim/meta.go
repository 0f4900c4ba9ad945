package anim

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the playback mode of a clip.
type Mode int

const (
	Repeating Mode = iota
	Once
)

func (m Mode) String() string {
	switch m {
	case Repeating:
		return "repeating"
	case Once:
		return "once"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "repeating"/"loop" and "once" (case-insensitive). The
// empty string is Repeating.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "repeating", "repeat", "loop":
		return Repeating, nil
	case "once":
		return Once, nil
	default:
		return Repeating, fmt.Errorf("anim: unknown mode %q: %w", s, ErrMalformedDefinition)
	}
}

// Meta describes one clip on the shared atlas. Values are copied into
// playback state, never referenced.
type Meta struct {
	Start     int
	Len       int
	FrameTime time.Duration
	Mode      Mode
	// Next is the default follow-up clip, NoClip if none.
	Next ID
}

// DefaultMeta mirrors the loader defaults: one frame, 100ms, repeating.
func DefaultMeta() Meta {
	return Meta{Start: 0, Len: 1, FrameTime: 100 * time.Millisecond, Mode: Repeating}
}

// Validate rejects clips the driver cannot play.
func (m Meta) Validate() error {
	if m.Start < 0 {
		return fmt.Errorf("anim: start %d < 0: %w", m.Start, ErrMalformedDefinition)
	}
	if m.Len < 1 {
		return fmt.Errorf("anim: len %d < 1: %w", m.Len, ErrMalformedDefinition)
	}
	if m.FrameTime <= 0 {
		return fmt.Errorf("anim: frame time %v <= 0: %w", m.FrameTime, ErrMalformedDefinition)
	}
	if m.Mode != Repeating && m.Mode != Once {
		return fmt.Errorf("anim: %v: %w", m.Mode, ErrMalformedDefinition)
	}
	return nil
}

// Duration is the length of one full pass over the clip.
func (m Meta) Duration() time.Duration {
	return time.Duration(m.Len) * m.FrameTime
}

// Last is the offset of the final frame.
func (m Meta) Last() int {
	return m.Len - 1
}

// Seconds converts float seconds to a duration, rounding to the nanosecond.
func Seconds(s float64) time.Duration {
	if s >= 0 {
		return time.Duration(s*float64(time.Second) + 0.5)
	}
	return time.Duration(s*float64(time.Second) - 0.5)
}
