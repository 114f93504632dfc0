package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/achilleasa/emberfx/emitter"
	"github.com/achilleasa/emberfx/gpu"
	"github.com/achilleasa/emberfx/log"
)

// An effect bound to the device buffer it is uploaded to.
type binding struct {
	Effect

	buffer gpu.Buffer

	// Records valid in buffer after the last upload.
	drawCount int
}

// A renderer that simulates effects and uploads them without presenting
// anything on screen.
type defaultRenderer struct {
	logger   log.Logger
	provider gpu.Provider
	clock    Clock
	options  Options

	bindings []*binding

	interrupted int32
	stats       FrameStats
}

// Create a headless renderer that allocates one buffer per effect from
// provider and advances the simulation using clock.
func NewDefault(provider gpu.Provider, clock Clock, opts Options, effects ...Effect) (Renderer, error) {
	if opts.Frames == 0 {
		return nil, ErrNoFrames
	}
	return newDefaultRenderer(provider, clock, opts, effects)
}

func newDefaultRenderer(provider gpu.Provider, clock Clock, opts Options, effects []Effect) (*defaultRenderer, error) {
	if len(effects) == 0 {
		return nil, ErrNoEffects
	}

	r := &defaultRenderer{
		logger:   log.New("renderer"),
		provider: provider,
		clock:    clock,
		options:  opts,
		bindings: make([]*binding, 0, len(effects)),
	}

	seen := make(map[string]bool, len(effects))
	for _, fx := range effects {
		if fx.Emitter == nil {
			r.Close()
			return nil, fmt.Errorf("%w: %s", ErrMissingEmitter, fx.Name)
		}
		if seen[fx.Name] {
			r.Close()
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, fx.Name)
		}
		seen[fx.Name] = true

		buf, err := provider.NewBuffer(fx.Name, fx.Emitter.BufferSize())
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("renderer: allocating buffer for effect %s: %w", fx.Name, err)
		}
		r.bindings = append(r.bindings, &binding{Effect: fx, buffer: buf})
		r.logger.Infof("attached effect %q (capacity %d, %d bytes on %s)", fx.Name, fx.Emitter.Capacity(), buf.Size(), provider.Name())
	}

	return r, nil
}

func (r *defaultRenderer) Render() error {
	atomic.StoreInt32(&r.interrupted, 0)
	for frame := uint32(0); frame < r.options.Frames; frame++ {
		if atomic.LoadInt32(&r.interrupted) != 0 {
			return ErrInterrupted
		}
		if err := r.renderFrame(); err != nil {
			return err
		}
	}
	return nil
}

func (r *defaultRenderer) Interrupt() {
	atomic.StoreInt32(&r.interrupted, 1)
}

// Simulate and upload one frame. Every emitter is updated before its
// buffer is written.
func (r *defaultRenderer) renderFrame() error {
	start := time.Now()
	dt, now := r.clock.Tick()

	effectStats := make([]EffectStat, len(r.bindings))
	for idx, b := range r.bindings {
		fxStart := time.Now()
		droppedBefore := b.Emitter.Stats().Dropped

		b.Emitter.Update(dt, now)
		count, err := b.Emitter.Upload(b.buffer)
		if err != nil {
			return fmt.Errorf("renderer: effect %s: %w", b.Name, err)
		}
		b.drawCount = count

		st := b.Emitter.Stats()
		if st.Dropped != droppedBefore {
			r.logger.Debugf("effect %q saturated at t=%.3f; dropped %d emissions", b.Name, now, st.Dropped-droppedBefore)
		}

		effectStats[idx] = EffectStat{
			Name:      b.Name,
			Capacity:  b.Emitter.Capacity(),
			Alive:     count,
			Indices:   count * emitter.IndicesPerParticle,
			Emitted:   st.Emitted,
			Dropped:   st.Dropped,
			Reclaimed: st.Reclaimed,
			SyncTime:  time.Since(fxStart),
		}
	}

	r.stats = FrameStats{
		Frame:      r.stats.Frame + 1,
		SimTime:    now,
		Effects:    effectStats,
		RenderTime: time.Since(start),
	}
	return nil
}

// Reset all emitters to their initial empty state.
func (r *defaultRenderer) resetEffects() {
	for _, b := range r.bindings {
		b.Emitter.Reset()
		b.drawCount = 0
	}
	r.logger.Notice("reset all effects")
}

func (r *defaultRenderer) Close() {
	for _, b := range r.bindings {
		b.buffer.Release()
	}
	r.bindings = nil
}

func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}
