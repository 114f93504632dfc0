package emitter

import (
	"fmt"

	"github.com/achilleasa/emberfx/gpu"
)

// Copy the alive particles, oldest first, into dst[0:AliveCount()] and
// return the number of copied records. The rest of dst is left untouched.
// Sync panics if dst cannot hold AliveCount() records.
func (e *Emitter) Sync(dst []Particle) int {
	if e.aliveCount == 0 {
		return 0
	}
	if len(dst) < e.aliveCount {
		panic(fmt.Sprintf("emitter: sync destination holds %d records; %d alive", len(dst), e.aliveCount))
	}

	offset := 0
	for _, s := range e.aliveSpans() {
		offset += copy(dst[offset:offset+s.len()], e.storage[s.lo:s.hi])
	}
	return offset
}

// Linearize the alive particles and write them at the start of buf. Only
// AliveCount()*ParticleSize bytes are written; nothing is written when no
// particles are alive. Returns the number of records to draw.
//
// The caller must make sure the device is not reading buf while it is
// being written.
func (e *Emitter) Upload(buf gpu.Buffer) (int, error) {
	count := e.Sync(e.staging)
	if count == 0 {
		return 0, nil
	}

	if err := buf.WriteData(Bytes(e.staging[:count]), 0); err != nil {
		return 0, fmt.Errorf("emitter: uploading %d particles: %w", count, err)
	}
	return count, nil
}
