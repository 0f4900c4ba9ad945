package anim

import (
	"hash/fnv"
	"strconv"
)

// ID identifies a clip at runtime. It is derived from the clip name so callers
// can compare clips with integer equality instead of string comparison.
type ID uint64

// NoClip is the zero ID. No name hashes to it in practice and it is used to
// mean "nothing requested".
const NoClip ID = 0

// Ref is anything that can be turned into a clip ID: raw names, typed enums
// and IDs themselves.
type Ref interface {
	ClipID() ID
}

// Named is implemented by closed enums of clip names.
type Named interface {
	ClipName() string
}

// Name is a raw clip name.
type Name string

func (n Name) ClipID() ID {
	return IDOf(string(n))
}

func (n Name) ClipName() string {
	return string(n)
}

func (id ID) ClipID() ID {
	return id
}

func (id ID) String() string {
	return "clip#" + strconv.FormatUint(uint64(id), 16)
}

// IDOf hashes a clip name into its runtime ID (64-bit FNV-1a).
func IDOf(name string) ID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return ID(h.Sum64())
}

// ByName adapts a Named enum value into a Ref.
func ByName(n Named) Ref {
	if n == nil {
		return NoClip
	}
	return Name(n.ClipName())
}
