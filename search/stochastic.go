package search

import "github.com/strop-go/strop/insn"

// Mutator is implemented by an instruction type that supports the
// stochastic searcher's "mutate one position's bits" move. Types that
// don't implement it simply never get chosen for that move.
type Mutator interface {
	// MutateBits randomly perturbs the encoding in place, using rng for
	// any randomness needed. It should still leave a decodable
	// instruction (iteration's legality rules still apply).
	MutateBits(rng *Lcg)
}

// Cost scores a candidate sequence against a fixed test set: lower is
// better, zero means every test matches exactly.
type Cost func(*insn.Sequence) float64

// RandomInstruction returns a uniformly-chosen valid instruction for an
// architecture, used by the insert and replace moves.
type RandomInstruction func(rng *Lcg) insn.Instruction

// Stochastic is a weak Metropolis sampler over sequences: adequate for
// functions that fit into a handful of instructions. For longer, mostly
// correct programs the bruteforce engine in this package is preferred
// (spec.md 4.5).
type Stochastic struct {
	Current *insn.Sequence

	parent      *insn.Sequence
	currentCost float64

	cost   Cost
	random RandomInstruction
	rng    *Lcg

	// ResetProbability is the small chance, per step, of resetting back
	// to the parent snapshot to escape a local minimum.
	ResetProbability float64
}

// NewStochastic returns a Stochastic search starting from the empty
// sequence for the given instruction family.
func NewStochastic(seed uint64, factory insn.Factory, random RandomInstruction, cost Cost) *Stochastic {
	start := insn.NewSequence(factory)
	s := &Stochastic{
		Current:          start,
		parent:           start.Clone(),
		cost:             cost,
		random:           random,
		rng:              NewLcg(seed),
		ResetProbability: 0.02,
	}
	s.currentCost = cost(start)
	return s
}

func (s *Stochastic) randomOffset(seq *insn.Sequence) int {
	return s.rng.Intn(seq.Len())
}

func (s *Stochastic) delete(seq *insn.Sequence) {
	if seq.Len() == 0 {
		return
	}
	off := s.randomOffset(seq)
	seq.Remove(off)
}

func (s *Stochastic) insert(seq *insn.Sequence) {
	off := 0
	if seq.Len() > 0 {
		off = s.randomOffset(seq)
	}
	seq.Insert(off, s.random(s.rng))
}

func (s *Stochastic) swap(seq *insn.Sequence) {
	if seq.Len() < 2 {
		return
	}
	a := s.randomOffset(seq)
	b := s.randomOffset(seq)
	ia, ib := seq.At(a), seq.At(b)
	seq.Set(a, ib)
	seq.Set(b, ia)
}

func (s *Stochastic) replace(seq *insn.Sequence) {
	if seq.Len() == 0 {
		return
	}
	off := s.randomOffset(seq)
	seq.Set(off, s.random(s.rng))
}

func (s *Stochastic) mutate(seq *insn.Sequence) {
	if seq.Len() == 0 {
		return
	}
	off := s.randomOffset(seq)
	if m, ok := seq.At(off).(Mutator); ok {
		m.MutateBits(s.rng)
	}
}

// randomMutation applies exactly one of the five mutation kinds, chosen
// uniformly (spec.md 4.5 step 2).
func (s *Stochastic) randomMutation(seq *insn.Sequence) {
	switch s.rng.Intn(5) {
	case 0:
		s.delete(seq)
	case 1:
		s.insert(seq)
	case 2:
		s.swap(seq)
	case 3:
		s.replace(seq)
	case 4:
		s.mutate(seq)
	}
}

// Step performs one iteration of the sampler and returns the (possibly
// unchanged) current sequence.
func (s *Stochastic) Step() *insn.Sequence {
	child := s.Current.Clone()
	s.randomMutation(child)
	childCost := s.cost(child)

	accept := false
	if childCost <= s.currentCost {
		accept = true
	} else {
		// Draw m uniformly in [0, childCost); accept iff m > currentCost.
		// The gap between currentCost and childCost determines how often
		// a worse child still gets taken: a pragmatic stand-in for a
		// proper Metropolis acceptance ratio.
		m := s.rng.Uint64() % uint64(childCost)
		if float64(m) > s.currentCost {
			accept = true
		}
	}

	if accept {
		s.Current = child
		s.currentCost = childCost
	}

	if s.rng.Chance(s.ResetProbability) {
		s.Current = s.parent.Clone()
		s.currentCost = s.cost(s.Current)
	}

	return s.Current
}

// Score returns (and caches) the current sequence's fitness.
func (s *Stochastic) Score() float64 { return s.currentCost }
