package anim

import (
	"errors"
	"testing"
	"time"
)

type enemyClip int

const (
	enemyRun enemyClip = iota
	enemyDie
)

func (c enemyClip) ClipName() string {
	if c == enemyDie {
		return "die"
	}
	return "run"
}

func TestIDOf(t *testing.T) {
	if IDOf("run") != IDOf("run") {
		t.Fatal("ids must be stable")
	}
	if IDOf("run") == IDOf("die") {
		t.Fatal("distinct names produced the same id")
	}
	if IDOf("") == NoClip {
		t.Fatal("empty name hashed to NoClip")
	}
	if Name("die").ClipID() != IDOf("die") {
		t.Fatal("Name.ClipID should hash the name")
	}
	if ByName(enemyDie).ClipID() != Name("die").ClipID() {
		t.Fatal("typed and raw names should agree")
	}
	if ByName(nil).ClipID() != NoClip {
		t.Fatal("nil Named should map to NoClip")
	}
	id := IDOf("run")
	if id.ClipID() != id {
		t.Fatal("ID should be its own Ref")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Repeating, false},
		{"repeating", Repeating, false},
		{"Loop", Repeating, false},
		{" once ", Once, false},
		{"pingpong", Repeating, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrMalformedDefinition) {
					t.Fatalf("expected ErrMalformedDefinition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

func TestMetaValidate(t *testing.T) {
	ok := Meta{Start: 0, Len: 3, FrameTime: 100 * time.Millisecond}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		meta Meta
	}{
		{"negative_start", Meta{Start: -1, Len: 1, FrameTime: time.Millisecond}},
		{"zero_len", Meta{Len: 0, FrameTime: time.Millisecond}},
		{"zero_frame_time", Meta{Len: 1}},
		{"bad_mode", Meta{Len: 1, FrameTime: time.Millisecond, Mode: Mode(7)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.meta.Validate(); !errors.Is(err, ErrMalformedDefinition) {
				t.Fatalf("expected ErrMalformedDefinition, got %v", err)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(0.1); got != 100*time.Millisecond {
		t.Fatalf("want 100ms got %v", got)
	}
	if got := Seconds(-0.25); got != -250*time.Millisecond {
		t.Fatalf("want -250ms got %v", got)
	}
	m := Meta{Len: 4, FrameTime: Seconds(0.25)}
	if m.Duration() != time.Second || m.Last() != 3 {
		t.Fatalf("unexpected duration %v last %d", m.Duration(), m.Last())
	}
}
