package common

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Every stochastic component takes one of these so behavior is reproducible
// under a fixed seed.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// SetSeed sets a new seed and resets the generator state.
func (r *SeededRNG) SetSeed(seed uint32) {
	r.state = seed
	r.initialSeed = seed
}

// Seed returns the seed the generator was created or reset with.
func (r *SeededRNG) Seed() uint32 {
	return r.initialSeed
}

// Reset resets the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Random generates the next random number using Mulberry32 algorithm.
// Returns a float64 between 0 (inclusive) and 1 (exclusive).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64((t^(t>>14))>>0) / 4294967296.0
}

// RandomInt generates a random integer in the specified range [min, max).
func (r *SeededRNG) RandomInt(min, max int) int {
	return int(r.Random()*float64(max-min)) + min
}

// RandomFloat generates a random float in the specified range [min, max).
func (r *SeededRNG) RandomFloat(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

// Chance returns true with probability p (clamped to [0,1]).
func (r *SeededRNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Random() < p
}

// Jitter returns base scaled by a random factor in [1-spread, 1+spread].
// Used for timer periods that must vary around a mean.
func (r *SeededRNG) Jitter(base, spread float64) float64 {
	return base * (1 - spread + r.Random()*2*spread)
}

// Pick returns a random index into a collection of length n.
func (r *SeededRNG) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return r.RandomInt(0, n)
}
