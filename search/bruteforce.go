// Package search implements the two search strategies described in
// spec.md 4.4 and 4.5: a deterministic, skip-aware odometer enumerator
// and a stochastic Metropolis-style mutator.
package search

import (
	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
)

// BruteForce walks the entire search space in odometer order, shortest
// sequences first, applying the static-analysis pipeline's fixup
// feedback to skip proven-dead regions rather than re-enumerating them
// one encoding at a time.
type BruteForce struct {
	Seq       *insn.Sequence
	MaxLength int // 0 means unlimited

	pipeline analysis.Pipeline
	pending  *analysis.Fixup
}

// NewBruteForce returns a BruteForce search starting from seq (normally
// the empty sequence) and checked against pipeline.
func NewBruteForce(seq *insn.Sequence, pipeline analysis.Pipeline) *BruteForce {
	return &BruteForce{Seq: seq, pipeline: pipeline}
}

// Next advances to, and returns, the next candidate that survives the
// full static-analysis pipeline. ok is false once MaxLength has been
// exceeded; the enumerator itself never terminates otherwise.
func (b *BruteForce) Next() (candidate *insn.Sequence, ok bool) {
	for {
		if b.pending != nil {
			fx := b.pending
			b.pending = nil
			b.Seq.MutAt(fx.Advance, fx.Offset)
		} else {
			b.Seq.Next()
		}

		if b.MaxLength > 0 && b.Seq.Len() > b.MaxLength {
			return nil, false
		}

		if fx := b.pipeline.Run(b.Seq); fx != nil {
			b.pending = fx
			continue
		}

		return b.Seq.Clone(), true
	}
}

// Peek returns the current sequence without advancing the search.
func (b *BruteForce) Peek() *insn.Sequence { return b.Seq }

// StartFrom resets the search to resume from a previously-saved point
// (e.g. to parallelise by handing different ranges to different
// goroutines, each seeded with a distinct starting sequence).
func (b *BruteForce) StartFrom(point *insn.Sequence) {
	b.Seq = point
	b.pending = nil
}
