// Package emitter implements a fixed-capacity particle emitter. Alive
// particles occupy a (possibly wrapped) range of a ring buffer; each frame
// expired particles are reclaimed from the oldest end, new ones are appended
// at a steady rate and the alive range is linearized for upload to the GPU.
//
// An Emitter is driven by a single goroutine: Update must complete before
// Sync or Upload are called for the same frame.
package emitter

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/achilleasa/emberfx/types"
)

// Lifetime emitter counters.
type Stats struct {
	// Particles written into the ring buffer.
	Emitted uint64

	// Emissions discarded because the buffer was full.
	Dropped uint64

	// Particles retired after reaching their max lifetime.
	Reclaimed uint64
}

type Emitter struct {
	storage []Particle

	// Linearized copy of the alive particles used by Upload.
	staging []Particle

	firstAlive int
	firstDead  int
	aliveCount int

	maxLifetime      float32
	emissionInterval float64
	spawnOrigin      types.Vec3
	spawnSpread      float32
	rng              *rand.Rand

	// Accumulated time not yet consumed by emissions.
	timeSinceLastEmission float64

	stats Stats
}

// Create a new emitter. An error wrapping ErrInvalidParameter is returned if
// any of the capacity, lifetime or rate options is not positive.
func New(opts Options) (*Emitter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	interval := 1.0 / float64(opts.EmissionRate)
	if interval <= 0 || math.IsInf(interval, 0) {
		return nil, fmt.Errorf("%w: emission rate %g yields an unusable interval", ErrInvalidParameter, opts.EmissionRate)
	}

	return &Emitter{
		storage:          make([]Particle, opts.Capacity),
		staging:          make([]Particle, opts.Capacity),
		maxLifetime:      opts.MaxLifetime,
		emissionInterval: interval,
		spawnOrigin:      opts.SpawnOrigin,
		spawnSpread:      opts.SpawnSpread,
		rng:              rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// Max number of simultaneously alive particles.
func (e *Emitter) Capacity() int {
	return len(e.storage)
}

// Number of alive particles; also the number of records to draw.
func (e *Emitter) AliveCount() int {
	return e.aliveCount
}

// Ring buffer index of the oldest alive particle.
func (e *Emitter) FirstAlive() int {
	return e.firstAlive
}

// Ring buffer index the next emitted particle will be written to.
func (e *Emitter) FirstDead() int {
	return e.firstDead
}

func (e *Emitter) MaxLifetime() float32 {
	return e.maxLifetime
}

// Seconds between two consecutive emissions.
func (e *Emitter) EmissionInterval() float64 {
	return e.emissionInterval
}

func (e *Emitter) Stats() Stats {
	return e.stats
}

// Size in bytes of a device buffer able to hold a full snapshot.
func (e *Emitter) BufferSize() int {
	return len(e.storage) * ParticleSize
}

// Discard all particles and counters. Storage is kept and not cleared.
func (e *Emitter) Reset() {
	e.firstAlive = 0
	e.firstDead = 0
	e.aliveCount = 0
	e.timeSinceLastEmission = 0
	e.stats = Stats{}
}

// Advance the simulation by deltaTime seconds. currentTime is the absolute
// simulation clock and must not decrease between calls; particle ages are
// derived from it rather than from accumulated deltas.
func (e *Emitter) Update(deltaTime, currentTime float32) {
	if e.aliveCount > 0 {
		for _, s := range e.aliveSpans() {
			for index := s.lo; index < s.hi; index++ {
				e.age(index, currentTime)
			}
		}
	}

	e.timeSinceLastEmission += float64(deltaTime)
	if e.timeSinceLastEmission < e.emissionInterval {
		return
	}

	// Catch up on every interval that elapsed since the last emission. The
	// count is computed up front as repeated subtraction stalls once the
	// accumulator is large relative to the interval.
	pending := math.Floor(e.timeSinceLastEmission / e.emissionInterval)
	e.timeSinceLastEmission -= pending * e.emissionInterval
	for ; pending > 0; pending-- {
		if e.aliveCount == len(e.storage) {
			// Nothing is reclaimed during emission so the rest would
			// be dropped as well.
			e.addDropped(pending)
			return
		}
		e.emit(currentTime)
	}
}

// Add n (a whole number) to the drop counter, saturating at MaxUint64.
// Counts of 2^63 and above saturate directly as converting them to uint64
// is not well defined.
func (e *Emitter) addDropped(n float64) {
	if n >= 1<<63 {
		e.stats.Dropped = math.MaxUint64
		return
	}
	count := uint64(n)
	if e.stats.Dropped > math.MaxUint64-count {
		e.stats.Dropped = math.MaxUint64
		return
	}
	e.stats.Dropped += count
}

// Reclaim the particle at index if it has outlived maxLifetime. Ages grow
// with spawn order so expired particles always form a prefix of the alive
// range and reclaiming by advancing firstAlive retires the oldest one.
func (e *Emitter) age(index int, currentTime float32) {
	if currentTime-e.storage[index].EmitTime < e.maxLifetime {
		return
	}

	e.firstAlive = (e.firstAlive + 1) % len(e.storage)
	e.aliveCount--
	e.stats.Reclaimed++
}

// Spawn a particle at firstDead. When the buffer is full the emission is
// dropped; alive particles are never evicted early.
func (e *Emitter) emit(currentTime float32) {
	if e.aliveCount == len(e.storage) {
		e.stats.Dropped++
		return
	}

	e.storage[e.firstDead] = Particle{
		EmitTime: currentTime,
		Position: e.spawnPosition(),
	}
	e.firstDead = (e.firstDead + 1) % len(e.storage)
	e.aliveCount++
	e.stats.Emitted++
}

func (e *Emitter) spawnPosition() types.Vec3 {
	if e.spawnSpread == 0 {
		return e.spawnOrigin
	}
	jitter := types.XYZ(
		2*e.rng.Float32()-1,
		2*e.rng.Float32()-1,
		2*e.rng.Float32()-1,
	)
	return e.spawnOrigin.Add(jitter.Mul(e.spawnSpread))
}

// A half-open range of ring buffer indices.
type span struct {
	lo, hi int
}

func (s span) len() int {
	return s.hi - s.lo
}

// Get the alive index ranges, oldest first. The result is only meaningful
// when aliveCount > 0; a full buffer (firstAlive == firstDead) yields spans
// covering every slot.
func (e *Emitter) aliveSpans() [2]span {
	if e.firstAlive < e.firstDead {
		return [2]span{{e.firstAlive, e.firstDead}, {}}
	}
	return [2]span{
		{e.firstAlive, len(e.storage)},
		{0, e.firstDead},
	}
}
