// Package renderer drives particle effects frame by frame: each frame every
// emitter is updated and its alive particles are uploaded to the device
// buffer the effect is drawn from.
package renderer

import "github.com/achilleasa/emberfx/emitter"

type Renderer interface {
	// Run the frame loop until the configured frame count is reached, the
	// renderer is interrupted or the window is closed.
	Render() error

	// Stop the frame loop after the current frame.
	Interrupt()

	// Release device buffers.
	Close()

	// Get statistics for the last rendered frame.
	Stats() FrameStats
}

// A named emitter to be rendered.
type Effect struct {
	Name    string
	Emitter *emitter.Emitter
}
