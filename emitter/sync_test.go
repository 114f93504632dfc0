package emitter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/achilleasa/emberfx/gpu"
)

func TestParticleLayout(t *testing.T) {
	if ParticleSize != 16 {
		t.Fatalf("expected particle record to be 16 bytes; got %d", ParticleSize)
	}

	p := []Particle{{EmitTime: 1, Position: [3]float32{2, 3, 4}}}
	if len(Bytes(p)) != ParticleSize {
		t.Fatalf("expected byte view of length %d; got %d", ParticleSize, len(Bytes(p)))
	}
	if Bytes(nil) != nil {
		t.Fatal("expected nil byte view for an empty slice")
	}
}

func TestSyncLinearizesRing(t *testing.T) {
	type spec struct {
		firstAlive int
		alive      int
	}
	// Capacity is 5 for all specs.
	specs := []spec{
		{0, 0},
		{0, 3},
		{2, 3},
		{3, 4},
		{4, 2},
		{0, 5},
		{3, 5},
	}

	for index, s := range specs {
		em := ringWith(t, 5, s.firstAlive, s.alive)

		dst := make([]Particle, 5)
		for i := range dst {
			dst[i].EmitTime = -1
		}

		n := em.Sync(dst)
		if n != s.alive {
			t.Fatalf("[spec %d] expected %d synced records; got %d", index, s.alive, n)
		}

		for i := 0; i < n; i++ {
			if dst[i].EmitTime != float32(i) {
				t.Fatalf("[spec %d] expected record %d to have emit time %d; got %g", index, i, i, dst[i].EmitTime)
			}
		}
		for i := n; i < len(dst); i++ {
			if dst[i].EmitTime != -1 {
				t.Fatalf("[spec %d] expected record %d past the alive range to be untouched", index, i)
			}
		}
	}
}

func TestSyncPanicsOnShortDestination(t *testing.T) {
	em := ringWith(t, 4, 1, 3)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Sync to panic for a destination smaller than the alive count")
		}
	}()
	em.Sync(make([]Particle, 2))
}

func TestUploadWritesAliveRange(t *testing.T) {
	em := ringWith(t, 4, 3, 3)

	provider := gpu.NewHostProvider()
	defer provider.Close()
	buf, err := provider.NewBuffer("particles", em.BufferSize())
	if err != nil {
		t.Fatal(err)
	}
	defer buf.Release()

	n, err := em.Upload(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 uploaded records; got %d", n)
	}

	exp := make([]Particle, 3)
	em.Sync(exp)

	data := buf.(*gpu.HostBuffer).Bytes()
	if !bytes.Equal(data[:n*ParticleSize], Bytes(exp)) {
		t.Fatal("expected uploaded bytes to match the linearized particles")
	}
	if !bytes.Equal(data[n*ParticleSize:], make([]byte, ParticleSize)) {
		t.Fatal("expected bytes past the alive range to be untouched")
	}
}

func TestUploadSkipsEmptyEmitter(t *testing.T) {
	em := mustNew(t, 4, 1, 1)

	provider := gpu.NewHostProvider()
	defer provider.Close()
	buf, err := provider.NewBuffer("particles", em.BufferSize())
	if err != nil {
		t.Fatal(err)
	}

	n, err := em.Upload(buf)
	if err != nil || n != 0 {
		t.Fatalf("expected no records and no error; got %d, %v", n, err)
	}
	if writes := buf.(*gpu.HostBuffer).Writes(); writes != 0 {
		t.Fatalf("expected no buffer writes; got %d", writes)
	}
}

func TestUploadPropagatesBufferErrors(t *testing.T) {
	em := ringWith(t, 4, 0, 2)

	provider := gpu.NewHostProvider()
	defer provider.Close()
	buf, err := provider.NewBuffer("small", ParticleSize)
	if err != nil {
		t.Fatal(err)
	}

	_, err = em.Upload(buf)
	if !errors.Is(err, gpu.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds; got %v", err)
	}
}

// Build an emitter whose ring holds alive particles starting at firstAlive.
// The i-th oldest particle is stamped with emit time i.
func ringWith(t *testing.T, capacity, firstAlive, alive int) *Emitter {
	t.Helper()
	em := mustNew(t, capacity, 1e6, 1)

	em.firstAlive = firstAlive
	em.firstDead = firstAlive
	for i := 0; i < alive; i++ {
		em.emit(float32(i))
	}
	return em
}
