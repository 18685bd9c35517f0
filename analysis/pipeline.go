package analysis

import "github.com/strop-go/strop/insn"

// Analyzer checks a Sequence and either accepts it (nil) or rejects it
// with a Fixup describing the minimum forward step needed to escape the
// rejected region.
type Analyzer func(*insn.Sequence) *Fixup

// Pipeline is an ordered composition of analyzers that short-circuits
// on the first Fixup. A candidate is accepted only when every analyzer
// in the pipeline returns nil. Adding a new constraint is adding a new
// Analyzer to the slice, not editing a monolith.
type Pipeline []Analyzer

// Run applies each analyzer in order, returning the first Fixup
// encountered, or nil if the whole pipeline passed.
func (p Pipeline) Run(seq *insn.Sequence) *Fixup {
	for _, a := range p {
		if fx := a(seq); fx != nil {
			return fx
		}
	}
	return nil
}
