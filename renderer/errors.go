package renderer

import "errors"

var (
	ErrNoEffects      = errors.New("renderer: no effects attached")
	ErrNoFrames       = errors.New("renderer: headless rendering requires a frame count")
	ErrDuplicateName  = errors.New("renderer: duplicate effect name")
	ErrInterrupted    = errors.New("renderer: interrupted while rendering")
	ErrMissingEmitter = errors.New("renderer: effect has no emitter")
	ErrNoDisplay      = errors.New("renderer: interactive rendering is not available in offscreen builds")
)
