//go:build offscreen

package renderer

// Offscreen builds carry no window system dependencies; only the headless
// renderer is available.
func NewInteractive(clock Clock, opts Options, effects ...Effect) (Renderer, error) {
	return nil, ErrNoDisplay
}
