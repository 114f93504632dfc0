package renderer

import "time"

type EffectStat struct {
	Name string

	Capacity int
	Alive    int

	// Indices the rendering collaborator draws when expanding each alive
	// particle to a quad.
	Indices int

	// Lifetime emitter counters.
	Emitted   uint64
	Dropped   uint64
	Reclaimed uint64

	// Time spent updating and uploading this effect.
	SyncTime time.Duration
}

type FrameStats struct {
	// Number of rendered frames.
	Frame uint64

	// Simulation clock at the last frame.
	SimTime float32

	Effects []EffectStat

	// Total time for the last frame.
	RenderTime time.Duration
}
