package search

// Lcg is a small linear-congruential pseudo-random generator. The
// stochastic searcher and the oracle's fuzzer both need a seeded,
// reproducible source of randomness (spec.md 5: "stochastic search is
// deterministic given a seeded PRNG"); math/rand's global source isn't
// seedable per-session without a data race between concurrent search
// instances, so each Lcg is owned by exactly one searcher or oracle.
type Lcg struct {
	state uint64
}

// NewLcg returns a generator seeded with seed. A zero seed is replaced
// with a fixed non-zero constant so the sequence is never degenerate.
func NewLcg(seed uint64) *Lcg {
	if seed == 0 {
		seed = 0x2545f4914f6cdd1d
	}
	return &Lcg{state: seed}
}

// Next returns the next raw 64-bit value in the sequence. Constants are
// the ones used by Knuth's MMIX generator.
func (l *Lcg) Next() uint64 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return l.state
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (l *Lcg) Intn(n int) int {
	if n <= 0 {
		panic("search: Intn called with n <= 0")
	}
	return int(l.Next() % uint64(n))
}

// Uint32 returns a pseudo-random 32-bit value.
func (l *Lcg) Uint32() uint32 {
	return uint32(l.Next() >> 32)
}

// Uint64 returns a pseudo-random 64-bit value.
func (l *Lcg) Uint64() uint64 {
	return l.Next()
}

// Chance reports true with approximately probability p (0 <= p <= 1).
func (l *Lcg) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	const scale = 1 << 24
	return float64(l.Next()%scale)/float64(scale) < p
}
