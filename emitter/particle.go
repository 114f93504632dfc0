package emitter

import (
	"unsafe"

	"github.com/achilleasa/emberfx/types"
)

// A single particle record. The layout matches the structured buffer read
// by the particle vertex shader so slices can be copied to the GPU as-is.
type Particle struct {
	// Simulation time (seconds) when the particle was spawned.
	EmitTime float32

	Position types.Vec3
}

// Size in bytes of a Particle record.
const ParticleSize = int(unsafe.Sizeof(Particle{}))

// Number of indices the rendering side draws per particle when expanding
// each one to a quad made of two triangles.
const IndicesPerParticle = 6

// Get a byte view of a particle slice. The returned slice aliases the
// particle storage.
func Bytes(particles []Particle) []byte {
	if len(particles) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&particles[0])), len(particles)*ParticleSize)
}
