package anim

import "errors"

var (
	ErrDefinitionNotReady  = errors.New("anim: definition not ready")
	ErrClipNotFound        = errors.New("anim: clip not found")
	ErrMalformedDefinition = errors.New("anim: malformed definition")
	ErrClipIDCollision     = errors.New("anim: clip id collision")
)
