// Package analysis implements the static-analysis pipeline: composable
// checks over a Sequence that reject candidates which can't possibly be
// a valid subroutine, each paired with a Fixup telling the search
// engine the minimum forward step that skips the rejected region
// rather than re-enumerating it one encoding at a time.
package analysis

import "github.com/strop-go/strop/insn"

// Advance is the shape of a Fixup's forward-step function: it mutates
// an instruction in place, returning insn.ErrEnd when that position's
// local encoding space is exhausted (at which point Sequence.MutAt
// carries into the next position).
type Advance func(insn.Instruction) error

// Fixup is a static analyzer's way of telling the search engine "the
// instruction at this offset must move forward; use this advance
// function". The engine applies it via Sequence.MutAt and re-runs the
// pipeline from the top.
type Fixup struct {
	Offset  int
	Advance Advance
	Reason  string
}

// NextOpcode is the coarse Advance used by most analyzers: it skips an
// entire opcode family in one step, which is correct whenever analysis
// rejects an instruction because of its class (impure, privileged,
// calls another subroutine) rather than its specific encoding.
func NextOpcode(i insn.Instruction) error { return i.NextOpcode() }

// NextEncoding is the fine-grained Advance used when only one specific
// encoding is at fault (a branch with an out-of-range displacement);
// it's Insn.Next rather than Insn.NextOpcode.
func NextEncoding(i insn.Instruction) error { return i.Next() }
