package emitter

import (
	"fmt"

	"github.com/achilleasa/emberfx/types"
)

type Options struct {
	// Max number of simultaneously alive particles.
	Capacity int

	// Seconds a particle stays alive after being spawned.
	MaxLifetime float32

	// Particles spawned per second.
	EmissionRate float32

	// Position assigned to newly spawned particles.
	SpawnOrigin types.Vec3

	// Half-size of the cube around SpawnOrigin that spawn positions are
	// uniformly jittered in. Zero spawns every particle at SpawnOrigin.
	SpawnSpread float32

	// Seed for the spawn position jitter.
	Seed int64
}

func (o Options) validate() error {
	if o.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0; got %d", ErrInvalidParameter, o.Capacity)
	}
	// The negated comparisons also reject NaN.
	if !(o.MaxLifetime > 0) {
		return fmt.Errorf("%w: max lifetime must be > 0; got %g", ErrInvalidParameter, o.MaxLifetime)
	}
	if !(o.EmissionRate > 0) {
		return fmt.Errorf("%w: emission rate must be > 0; got %g", ErrInvalidParameter, o.EmissionRate)
	}
	if !(o.SpawnSpread >= 0) {
		return fmt.Errorf("%w: spawn spread must be >= 0; got %g", ErrInvalidParameter, o.SpawnSpread)
	}
	return nil
}
