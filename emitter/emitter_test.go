package emitter

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/achilleasa/emberfx/types"
)

func TestNewValidation(t *testing.T) {
	type spec struct {
		capacity int
		lifetime float32
		rate     float32
	}
	nan := float32(math.NaN())
	specs := []spec{
		{0, 1, 1},
		{-4, 1, 1},
		{4, 0, 1},
		{4, -1, 1},
		{4, nan, 1},
		{4, 1, 0},
		{4, 1, -2},
		{4, 1, nan},
	}

	for index, s := range specs {
		em, err := New(Options{Capacity: s.capacity, MaxLifetime: s.lifetime, EmissionRate: s.rate})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("[spec %d] expected ErrInvalidParameter; got %v", index, err)
		}
		if em != nil {
			t.Fatalf("[spec %d] expected no emitter to be returned on error", index)
		}
	}
}

func TestNewInitialState(t *testing.T) {
	em := mustNew(t, 8, 2, 4)

	if em.Capacity() != 8 {
		t.Fatalf("expected capacity to be 8; got %d", em.Capacity())
	}
	if em.AliveCount() != 0 || em.FirstAlive() != 0 || em.FirstDead() != 0 {
		t.Fatalf("expected empty emitter; got alive %d, firstAlive %d, firstDead %d", em.AliveCount(), em.FirstAlive(), em.FirstDead())
	}
	if em.EmissionInterval() != 0.25 {
		t.Fatalf("expected emission interval to be 0.25; got %g", em.EmissionInterval())
	}
	if em.BufferSize() != 8*ParticleSize {
		t.Fatalf("expected buffer size to be %d; got %d", 8*ParticleSize, em.BufferSize())
	}
}

func TestFillWithoutReclaim(t *testing.T) {
	em := mustNew(t, 4, 10, 1)

	for tm := float32(1); tm <= 4; tm++ {
		em.Update(1, tm)
	}

	assertState(t, em, 4, 0, 0)
	if st := em.Stats(); st.Reclaimed != 0 || st.Emitted != 4 {
		t.Fatalf("expected 4 emitted and 0 reclaimed particles; got %+v", st)
	}
}

func TestReclaimAndEmitInSameUpdate(t *testing.T) {
	em := mustNew(t, 4, 10, 1)
	for tm := float32(1); tm <= 4; tm++ {
		em.Update(1, tm)
	}

	// The particle spawned at t=1 reaches its max lifetime and is reclaimed
	// (alive 3, firstAlive 1); the emission pass then refills its slot.
	em.Update(1, 11)

	assertState(t, em, 4, 1, 1)
	st := em.Stats()
	if st.Reclaimed != 1 || st.Emitted != 5 {
		t.Fatalf("expected 5 emitted and 1 reclaimed particles; got %+v", st)
	}

	got := emitTimes(em)
	exp := []float32{2, 3, 4, 11}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("expected alive emit times %v; got %v", exp, got)
	}
}

func TestReclaimOnlyUpdate(t *testing.T) {
	// A slow rate keeps the emission pass idle so the reclaim result is
	// observable on its own.
	em := mustNew(t, 4, 10, 1)
	for tm := float32(1); tm <= 4; tm++ {
		em.Update(1, tm)
	}
	em.timeSinceLastEmission = 0

	em.Update(0, 11)
	assertState(t, em, 3, 1, 0)
}

func TestSaturationDropsEmissions(t *testing.T) {
	em := mustNew(t, 2, 100, 1)

	// Five intervals elapse in one step; only two particles fit.
	em.Update(5, 5)

	assertState(t, em, 2, 0, 0)
	st := em.Stats()
	if st.Emitted != 2 || st.Dropped != 3 {
		t.Fatalf("expected 2 emitted and 3 dropped particles; got %+v", st)
	}

	for i := 0; i < 5; i++ {
		em.Update(1, float32(6+i))
		if em.AliveCount() > 2 {
			t.Fatalf("expected alive count to never exceed 2; got %d", em.AliveCount())
		}
	}
}

func TestEmitWhenFullIsNoOp(t *testing.T) {
	em := mustNew(t, 3, 100, 1)
	for i := 0; i < 3; i++ {
		em.emit(float32(i))
	}

	storage := append([]Particle(nil), em.storage...)
	alive, firstAlive, firstDead := em.AliveCount(), em.FirstAlive(), em.FirstDead()

	for i := 0; i < 4; i++ {
		em.emit(50)
	}

	assertState(t, em, alive, firstAlive, firstDead)
	if !reflect.DeepEqual(storage, em.storage) {
		t.Fatal("expected storage to be unchanged by dropped emissions")
	}
	if em.Stats().Dropped != 4 {
		t.Fatalf("expected 4 dropped emissions; got %d", em.Stats().Dropped)
	}
}

func TestUpdateWithNoAliveParticles(t *testing.T) {
	em := mustNew(t, 4, 1, 1)

	em.Update(0.5, 0.5)
	assertState(t, em, 0, 0, 0)

	em.Update(0.5, 1)
	assertState(t, em, 1, 0, 1)

	// The only particle expires and a new one is spawned in its place.
	em.Update(1, 2)
	assertState(t, em, 1, 1, 2)

	// Expire everything without emitting; indices stay where they are.
	em.timeSinceLastEmission = -10
	em.Update(0, 10)
	assertState(t, em, 0, 2, 2)

	em.timeSinceLastEmission = 0
	em.Update(1, 11)
	assertState(t, em, 1, 2, 3)
}

func TestCatchUpBoundedForLargeSteps(t *testing.T) {
	em := mustNew(t, 10, 1e9, 1000)

	em.Update(1e6, 1e6)

	st := em.Stats()
	if st.Emitted != 10 {
		t.Fatalf("expected 10 emitted particles; got %d", st.Emitted)
	}
	total := st.Emitted + st.Dropped
	if total < 1e9-1 || total > 1e9 {
		t.Fatalf("expected ~1e9 emission attempts; got %d", total)
	}
}

func TestDropCounterSaturates(t *testing.T) {
	type spec struct {
		capacity   int
		rate       float32
		step       float32
		expDropped uint64
	}
	specs := []spec{
		{2, 1, 1e10, 1e10 - 2},
		{2, 1e6, 1e30, math.MaxUint64},
	}
	for index, s := range specs {
		em := mustNew(t, s.capacity, 1, s.rate)
		em.Update(s.step, s.step)

		st := em.Stats()
		if st.Emitted != uint64(s.capacity) {
			t.Fatalf("[spec %d] expected %d emitted particles; got %d", index, s.capacity, st.Emitted)
		}
		if st.Dropped != s.expDropped {
			t.Fatalf("[spec %d] expected dropped count to be %d; got %d", index, s.expDropped, st.Dropped)
		}
	}

	em := mustNew(t, 1, 1, 1)
	em.stats.Dropped = math.MaxUint64 - 1
	em.addDropped(5)
	if em.stats.Dropped != math.MaxUint64 {
		t.Fatalf("expected dropped count to saturate; got %d", em.stats.Dropped)
	}
}

func TestHasPrefix(t *testing.T) {
	type spec struct {
		times  []float32
		prefix []float32
		exp    bool
	}
	specs := []spec{
		{[]float32{}, nil, true},
		{nil, []float32{}, true},
		{[]float32{1, 2}, []float32{1}, true},
		{[]float32{1, 2}, []float32{2}, false},
		{[]float32{1}, []float32{1, 2}, false},
	}
	for index, s := range specs {
		if got := hasPrefix(s.times, s.prefix); got != s.exp {
			t.Fatalf("[spec %d] expected hasPrefix(%v, %v) to be %t; got %t", index, s.times, s.prefix, s.exp, got)
		}
	}
}

func TestLongRunEmissionRate(t *testing.T) {
	em := mustNew(t, 4096, 1e6, 10)
	rng := rand.New(rand.NewSource(42))

	var now float32
	for now < 100 {
		dt := rng.Float32() * 0.05
		now += dt
		em.Update(dt, now)
	}

	exp := math.Floor(float64(now) * 10)
	got := float64(em.Stats().Emitted)
	if math.Abs(got-exp) > 1 {
		t.Fatalf("expected ~%g particles after %gs; got %g", exp, now, got)
	}
}

func TestSpawnOrigin(t *testing.T) {
	origin := types.XYZ(1, -2, 3)
	em, err := New(Options{Capacity: 2, MaxLifetime: 5, EmissionRate: 1, SpawnOrigin: origin})
	if err != nil {
		t.Fatal(err)
	}

	em.Update(1, 1)
	dst := make([]Particle, 2)
	em.Sync(dst)
	if dst[0].Position != origin {
		t.Fatalf("expected particle position %v; got %v", origin, dst[0].Position)
	}
}

func TestReset(t *testing.T) {
	em := mustNew(t, 4, 10, 1)
	em.Update(3, 3)
	em.Reset()

	assertState(t, em, 0, 0, 0)
	if em.Stats() != (Stats{}) {
		t.Fatalf("expected stats to be cleared; got %+v", em.Stats())
	}
}

func TestRandomizedInvariants(t *testing.T) {
	type spec struct {
		capacity int
		lifetime float32
		rate     float32
	}
	specs := []spec{
		{1, 0.5, 3},
		{8, 1.3, 7},
		{16, 0.7, 40},
		{64, 2, 20},
	}

	for index, s := range specs {
		em := mustNew(t, s.capacity, s.lifetime, s.rate)
		rng := rand.New(rand.NewSource(int64(index + 1)))

		var now float32
		var prev []float32
		for step := 0; step < 2000; step++ {
			dt := rng.Float32() * 0.3
			now += dt
			reclaimedBefore := em.Stats().Reclaimed

			em.Update(dt, now)

			alive := em.AliveCount()
			if alive < 0 || alive > s.capacity {
				t.Fatalf("[spec %d] step %d: alive count %d out of range", index, step, alive)
			}

			st := em.Stats()
			if st.Emitted-st.Reclaimed != uint64(alive) {
				t.Fatalf("[spec %d] step %d: emitted %d - reclaimed %d != alive %d", index, step, st.Emitted, st.Reclaimed, alive)
			}

			// Exactly the previously alive particles that reached their
			// lifetime must have been reclaimed, oldest first.
			expReclaimed := 0
			for _, emitTime := range prev {
				if now-emitTime >= s.lifetime {
					expReclaimed++
				}
			}
			if got := int(st.Reclaimed - reclaimedBefore); got != expReclaimed {
				t.Fatalf("[spec %d] step %d: expected %d reclaimed particles; got %d", index, step, expReclaimed, got)
			}

			cur := emitTimes(em)
			survivors := prev[expReclaimed:]
			if !hasPrefix(cur, survivors) {
				t.Fatalf("[spec %d] step %d: expected surviving particles %v to lead %v", index, step, survivors, cur)
			}
			for i := 1; i < len(cur); i++ {
				if cur[i] < cur[i-1] {
					t.Fatalf("[spec %d] step %d: snapshot not in spawn order: %v", index, step, cur)
				}
			}
			prev = cur
		}
	}
}

func mustNew(t *testing.T, capacity int, lifetime, rate float32) *Emitter {
	t.Helper()
	em, err := New(Options{Capacity: capacity, MaxLifetime: lifetime, EmissionRate: rate})
	if err != nil {
		t.Fatal(err)
	}
	return em
}

func assertState(t *testing.T, em *Emitter, alive, firstAlive, firstDead int) {
	t.Helper()
	if em.AliveCount() != alive {
		t.Fatalf("expected alive count to be %d; got %d", alive, em.AliveCount())
	}
	if em.FirstAlive() != firstAlive {
		t.Fatalf("expected firstAlive to be %d; got %d", firstAlive, em.FirstAlive())
	}
	if em.FirstDead() != firstDead {
		t.Fatalf("expected firstDead to be %d; got %d", firstDead, em.FirstDead())
	}
}

// Check whether times starts with prefix. An empty prefix always matches.
func hasPrefix(times, prefix []float32) bool {
	if len(times) < len(prefix) {
		return false
	}
	for i := range prefix {
		if times[i] != prefix[i] {
			return false
		}
	}
	return true
}

func emitTimes(em *Emitter) []float32 {
	dst := make([]Particle, em.Capacity())
	n := em.Sync(dst)
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = dst[i].EmitTime
	}
	return out
}

func TestSpawnSpread(t *testing.T) {
	origin := types.XYZ(5, 5, 5)
	em, err := New(Options{Capacity: 64, MaxLifetime: 100, EmissionRate: 10, SpawnOrigin: origin, SpawnSpread: 0.5, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	em.Update(6.4, 6.4)

	dst := make([]Particle, 64)
	n := em.Sync(dst)
	if n != 64 {
		t.Fatalf("expected 64 alive particles; got %d", n)
	}

	jittered := false
	for i := 0; i < n; i++ {
		for c := 0; c < 3; c++ {
			d := dst[i].Position[c] - origin[c]
			if d < -0.5 || d > 0.5 {
				t.Fatalf("expected particle %d to spawn within 0.5 of the origin; got %v", i, dst[i].Position)
			}
			if d != 0 {
				jittered = true
			}
		}
	}
	if !jittered {
		t.Fatal("expected spawn positions to be jittered")
	}

	if _, err = New(Options{Capacity: 1, MaxLifetime: 1, EmissionRate: 1, SpawnSpread: -1}); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for a negative spread; got %v", err)
	}
}
