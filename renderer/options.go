package renderer

type Options struct {
	// Number of frames to render; 0 renders until interrupted. Headless
	// renderers require a non-zero value.
	Frames uint32

	// Window dims for interactive renderers.
	FrameW uint32
	FrameH uint32

	// Half-extent of the square world region shown by interactive renderers.
	ViewExtent float32

	// Rasterized particle size in pixels.
	PointSize float32
}
