package search

import (
	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
)

// Session runs Workers independent bruteforce searches concurrently,
// one goroutine each, and collects every worker's result rather than
// racing for a single winner. It is the "-K" (keep going) worker pool:
// each goroutine owns its own *BruteForce and starting point, sharing
// nothing, so together they turn up more distinct equivalent programs
// in a given attempt budget than one search run that many times over
// would, per spec.md 4.6's "multiple independent search instances at
// the process level, each seeded differently; they share nothing" —
// reinterpreted at goroutine granularity, Go's natural analogue of
// that process-level model.
//
// Workers are positioned, not seeded: worker i's BruteForce starts
// Stride*i odometer steps ahead of the empty sequence (plain
// insn.Sequence.Next calls, the same primitive StartFrom's own doc
// comment already names for this purpose), so workers explore
// non-overlapping forward ranges of the same deterministic ordering
// instead of redoing each other's work.
//
// JudgeFactory is called once per worker, with that worker's index, to
// build its judge: callers whose judge wraps an *oracle.Oracle must
// return a judge backed by its own Oracle.Clone rather than closing
// over one shared Oracle, since Oracle.Passes mutates its test suite
// and PRNG state with no synchronization. A Session never calls a
// judge it didn't obtain this way, and never calls any worker's judge
// from another goroutine, so "share nothing" holds regardless of what
// JudgeFactory's judges close over internally.
type Session struct {
	Factory      insn.Factory
	Pipeline     analysis.Pipeline
	JudgeFactory func(worker int) func(*insn.Sequence) bool

	Workers  int
	Attempts int // per worker; 0 means unbounded
	Stride   int // odometer steps between consecutive workers' starting points
}

// SessionResult is one worker's outcome.
type SessionResult struct {
	Worker   int
	Found    bool
	Sequence *insn.Sequence
	Attempts int
}

// NewSession returns a Session ready to Run. Workers and Stride are
// clamped to 1 so a caller passing zero values still gets a (trivial,
// single-worker) search rather than a no-op.
func NewSession(factory insn.Factory, pipeline analysis.Pipeline, judgeFactory func(worker int) func(*insn.Sequence) bool, workers, attempts, stride int) *Session {
	if workers < 1 {
		workers = 1
	}
	if stride < 1 {
		stride = 1
	}
	return &Session{Factory: factory, Pipeline: pipeline, JudgeFactory: judgeFactory, Workers: workers, Attempts: attempts, Stride: stride}
}

// Run launches every worker and blocks until all of them have either
// found a candidate or exhausted Attempts, returning one SessionResult
// per worker, indexed by Worker.
func (s *Session) Run() []SessionResult {
	done := make(chan SessionResult, s.Workers)
	for w := 0; w < s.Workers; w++ {
		go s.runWorker(w, done)
	}
	results := make([]SessionResult, s.Workers)
	for n := 0; n < s.Workers; n++ {
		r := <-done
		results[r.Worker] = r
	}
	return results
}

func (s *Session) runWorker(id int, done chan<- SessionResult) {
	seq := insn.NewSequence(s.Factory)
	for i := 0; i < id*s.Stride; i++ {
		seq.Next()
	}
	bf := NewBruteForce(seq, s.Pipeline)
	judge := s.JudgeFactory(id)

	attempt := 0
	for s.Attempts == 0 || attempt < s.Attempts {
		cand, ok := bf.Next()
		if !ok {
			break
		}
		attempt++
		if judge(cand) {
			done <- SessionResult{Worker: id, Found: true, Sequence: cand, Attempts: attempt}
			return
		}
	}
	done <- SessionResult{Worker: id, Found: false, Attempts: attempt}
}
