// Package oracle implements the equivalence oracle from spec.md 4.8: a
// hybrid quick-probe-then-fuzz tester that decides whether a candidate
// sequence computes the same function as a reference implementation,
// growing its counter-example test suite as it goes.
package oracle

import (
	"github.com/strop-go/strop/runerr"
	"github.com/strop-go/strop/search"
)

// Case is one (input, expected output) test pair.
type Case[P, R comparable] struct {
	Params   P
	Expected R
}

// Callable is satisfied by both the reference function and by a
// candidate wrapped around a calling-convention binding: anything the
// oracle can feed a Params and get back a (RetVal, error).
type Callable[P, R comparable] func(P) (R, error)

// Oracle holds a reference function, a monotonically growing test
// suite, and a fuzz budget. P and R mirror the reference Rust crate's
// own Oracle<Params, RetVal> parameterization (spec.md 4.8); comparable
// is required so mismatches can be detected with ==.
type Oracle[P, R comparable] struct {
	Reference Callable[P, R]
	Tests     []Case[P, R]

	// FuzzBudget bounds how many fresh random inputs Passes draws once
	// the stored suite is satisfied (spec.md 4.8: "~5000 draws").
	FuzzBudget int

	// RandomParams draws a fresh random Params value for fuzzing.
	RandomParams func(rng *search.Lcg) P

	rng *search.Lcg
}

// New returns an Oracle seeded with the given quick-probe test cases.
func New[P, R comparable](seed uint64, reference Callable[P, R], seedCases []Case[P, R], randomParams func(rng *search.Lcg) P) *Oracle[P, R] {
	tests := make([]Case[P, R], len(seedCases))
	copy(tests, seedCases)
	return &Oracle[P, R]{
		Reference:    reference,
		Tests:        tests,
		FuzzBudget:   5000,
		RandomParams: randomParams,
		rng:          search.NewLcg(seed),
	}
}

// Clone returns an independent Oracle with its own copy of the test
// suite and its own freshly seeded *search.Lcg, so concurrent callers
// (e.g. one per -jobs worker) never share the mutable state Passes
// advances — spec.md 5's "no shared-mutable data structures across
// threads" extends to the oracle, not just the search engine.
func (o *Oracle[P, R]) Clone(seed uint64) *Oracle[P, R] {
	tests := make([]Case[P, R], len(o.Tests))
	copy(tests, o.Tests)
	return &Oracle[P, R]{
		Reference:    o.Reference,
		Tests:        tests,
		FuzzBudget:   o.FuzzBudget,
		RandomParams: o.RandomParams,
		rng:          search.NewLcg(seed),
	}
}

// Passes implements spec.md 4.8's passes(candidate) operation: first
// the stored suite, then (if that's clean) a fuzz pass that appends any
// disagreement it finds to the suite before reporting failure.
func (o *Oracle[P, R]) Passes(candidate Callable[P, R]) bool {
	for _, c := range o.Tests {
		got, err := candidate(c.Params)
		if err != nil || got != c.Expected {
			return false
		}
	}

	for i := 0; i < o.FuzzBudget; i++ {
		p := o.RandomParams(o.rng)
		want, refErr := o.Reference(p)
		got, candErr := candidate(p)

		if refErr != nil {
			// The reference function doesn't define a result for this
			// input, so the candidate is free to return anything — but
			// per spec.md 9's Open Question, never to just hang.
			if candErr == runerr.DidntReturn {
				// Not recorded as a Case: there's no well-defined
				// Expected value to pin down for an input the reference
				// itself refuses to define, only the requirement that
				// the candidate terminates at all.
				return false
			}
			continue
		}
		if candErr != nil || got != want {
			o.Tests = append(o.Tests, Case[P, R]{Params: p, Expected: want})
			return false
		}
	}
	return true
}
