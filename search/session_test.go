package search

import (
	"testing"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
)

// TestSessionEveryWorkerFindsTheReturn exercises the two-opcode family
// already defined in bruteforce_test.go: whatever odometer step a
// worker starts from, op 1 ("return") is always reachable by advancing
// far enough, so every worker should report success.
func TestSessionEveryWorkerFindsTheReturn(t *testing.T) {
	pipeline := analysis.Pipeline{analysis.MakeReturn()}
	judgeFactory := func(int) func(*insn.Sequence) bool {
		return func(seq *insn.Sequence) bool { return seq.Len() > 0 && seq.At(seq.LastOffset()).IsReturn() }
	}

	sess := NewSession(twoOpFirst, pipeline, judgeFactory, 4, 1000, 50)
	results := sess.Run()

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Found {
			t.Fatalf("worker %d: expected to find a candidate within its budget", r.Worker)
		}
		if !r.Sequence.At(r.Sequence.LastOffset()).IsReturn() {
			t.Fatalf("worker %d: candidate does not end in a return", r.Worker)
		}
	}
}

// TestSessionWorkersUseIndependentBudgets confirms each worker gets its
// own attempt budget: under a judge that never accepts, both workers
// (given a stride of zero, which NewSession clamps to 1) report no match
// after exactly their own 3 attempts.
func TestSessionWorkersUseIndependentBudgets(t *testing.T) {
	pipeline := analysis.Pipeline{}
	judgeFactory := func(int) func(*insn.Sequence) bool {
		return func(*insn.Sequence) bool { return false } // never satisfied: forces full budget use
	}

	sess := NewSession(twoOpFirst, pipeline, judgeFactory, 2, 3, 0)
	results := sess.Run()

	if results[0].Found || results[1].Found {
		t.Fatalf("expected neither worker to find a match under an always-false judge")
	}
	if results[0].Attempts != 3 || results[1].Attempts != 3 {
		t.Fatalf("expected each worker to exhaust its own 3-attempt budget independently, got %d and %d",
			results[0].Attempts, results[1].Attempts)
	}
}
