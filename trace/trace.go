// Package trace is a thin "search and report" convenience wrapper over
// the bruteforce or stochastic search engines plus per-instruction
// disassembly, ported from original_source's porcelain.rs. It's what
// cmd/strop calls once it has a search configured; nothing in the
// search or analysis packages depends on it.
package trace

import (
	"fmt"
	"io"
	"log"

	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

// Logger wraps the stdlib logger with a Verbose gate, matching the
// teacher's plain log.Logger use in cmd/run68/main.go rather than
// introducing a structured-logging library the rest of the pack
// doesn't reach for either.
type Logger struct {
	*log.Logger
	Verbose bool
}

// NewLogger returns a Logger writing to w with the standard
// date/time-free prefix the teacher's CLIs use.
func NewLogger(w io.Writer, verbose bool) *Logger {
	return &Logger{Logger: log.New(w, "", 0), Verbose: verbose}
}

// Tracef logs only when Verbose is set: per-candidate search chatter
// that would otherwise drown out the final result.
func (l *Logger) Tracef(format string, args ...any) {
	if l.Verbose {
		l.Printf(format, args...)
	}
}

// Report is the outcome of one Run: either a solution sequence or the
// reason the search gave up.
type Report struct {
	Found    bool
	Sequence *insn.Sequence
	Attempts int
	Reason   string
}

// Disassembly renders one line per instruction, each prefixed with its
// byte offset, the way a linear disassembly listing does.
func Disassembly(seq *insn.Sequence) string {
	offsets := seq.ByteOffsets()
	out := ""
	for i := 0; i < seq.Len(); i++ {
		out += fmt.Sprintf("%04x: %s\n", offsets[i], seq.At(i))
	}
	return out
}

// Source abstracts over BruteForce and Stochastic: anything that can
// be asked, one step at a time, for the next candidate worth judging.
type Source interface {
	Next() (*insn.Sequence, bool)
}

// Judge decides whether a candidate sequence is an accepted solution
// (normally an oracle.Oracle's Passes, specialised to a concrete
// Callable).
type Judge func(seq *insn.Sequence) bool

// StochasticSource adapts a search.Stochastic (whose Step never
// exhausts) into a Source that stops after Budget steps, so Run can
// drive either search strategy through the same loop.
type StochasticSource struct {
	Searcher *search.Stochastic
	Budget   int

	steps int
}

// Next returns the stochastic searcher's current sequence after one
// more mutation step, or ok=false once Budget steps have elapsed.
func (s *StochasticSource) Next() (*insn.Sequence, bool) {
	if s.Budget > 0 && s.steps >= s.Budget {
		return nil, false
	}
	s.steps++
	return s.Searcher.Step(), true
}

// Run drives src for up to maxAttempts candidates, logging each one
// when l is verbose, and stops at the first candidate judge accepts.
func Run(src Source, judge Judge, maxAttempts int, l *Logger) Report {
	for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
		cand, ok := src.Next()
		if !ok {
			return Report{Found: false, Attempts: attempt - 1, Reason: "search space exhausted"}
		}
		l.Tracef("attempt %d: %s", attempt, cand)
		if judge(cand) {
			return Report{Found: true, Sequence: cand, Attempts: attempt}
		}
	}
	return Report{Found: false, Attempts: maxAttempts, Reason: "attempt budget exhausted"}
}
