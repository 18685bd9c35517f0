package analysis

import "github.com/strop-go/strop/insn"

// MakeReturn requires the last instruction in the sequence to be the
// architecture's return instruction. If it isn't, the fixup advances
// the opcode at the last offset; repeated application eventually lands
// on the return opcode, since NextOpcode enumerates every opcode family
// in order.
func MakeReturn() Analyzer {
	return func(seq *insn.Sequence) *Fixup {
		if seq.Len() == 0 {
			return nil
		}
		last := seq.LastOffset()
		if seq.At(last).IsReturn() {
			return nil
		}
		return &Fixup{Offset: last, Advance: NextOpcode, Reason: "make_return"}
	}
}

// BranchesInRange requires every PC-relative branch's target to land
// on the start of some instruction in the sequence, or one-past-the-end
// (just after the last instruction). An out-of-range branch always gets
// the fine-grained NextEncoding step, since a branch's displacement is
// usually the only operand and the next encoding is simply the next
// displacement; leaving the opcode family happens only when the
// architecture's Next runs out of displacements and moves on itself.
func BranchesInRange() Analyzer {
	return func(seq *insn.Sequence) *Fixup {
		offsets := seq.ByteOffsets()
		total := offsets[len(offsets)-1]
		for i := 0; i < seq.Len(); i++ {
			in := seq.At(i)
			disp, ok := in.BranchOffset()
			if !ok {
				continue
			}
			target := offsets[i] + in.Length() + disp
			if target == total {
				continue
			}
			valid := false
			for _, o := range offsets[:len(offsets)-1] {
				if o == target {
					valid = true
					break
				}
			}
			if valid {
				continue
			}
			return &Fixup{Offset: i, Advance: NextEncoding, Reason: "branches_in_range"}
		}
		return nil
	}
}

// Forbid rejects any instruction matching predicate, advancing past its
// whole opcode family. It is the single combinator behind
// not_allowed_in_subroutine, not_allowed_in_leaf, and purity: each is
// just Forbid with a different predicate.
func Forbid(predicate func(insn.Instruction) bool, reason string) Analyzer {
	return func(seq *insn.Sequence) *Fixup {
		for i := 0; i < seq.Len(); i++ {
			if predicate(seq.At(i)) {
				return &Fixup{Offset: i, Advance: NextOpcode, Reason: reason}
			}
		}
		return nil
	}
}

// NotAllowedInSubroutine forbids instructions that would be illegal or
// nonsensical in a subroutine body (privileged opcodes, processor-state
// changes). predicate is supplied per architecture.
func NotAllowedInSubroutine(predicate func(insn.Instruction) bool) Analyzer {
	return Forbid(predicate, "not_allowed_in_subroutine")
}

// NotAllowedInLeaf forbids instructions that call another subroutine,
// for searches restricted to leaf functions. predicate is supplied per
// architecture (it recognises that architecture's call instructions).
func NotAllowedInLeaf(predicate func(insn.Instruction) bool) Analyzer {
	return Forbid(predicate, "not_allowed_in_leaf")
}

// Purity forbids any instruction with effects beyond its own register
// results (memory or I/O).
func Purity() Analyzer {
	return Forbid(func(i insn.Instruction) bool { return i.IsImpure() }, "purity")
}

// Dataflow requires each register in liveIn to be read before it is
// ever overwritten (ruling out functions that silently ignore their
// arguments) and each register in liveOut to be written at least once
// before the return (ruling out functions that never produce their
// result). A dead argument gets its fixup at the instruction that
// overwrites it; a live-out register that is never written gets its
// fixup at the last instruction.
func Dataflow(liveIn, liveOut []insn.Datum) Analyzer {
	return func(seq *insn.Sequence) *Fixup {
		touched := make(map[insn.Datum]bool, len(liveIn))
		for i := 0; i < seq.Len(); i++ {
			in := seq.At(i)
			for _, d := range liveIn {
				if touched[d] {
					continue
				}
				if in.Writes(d) && !in.Reads(d) {
					return &Fixup{Offset: i, Advance: NextOpcode, Reason: "dataflow: dead argument " + string(d)}
				}
				if in.Reads(d) {
					touched[d] = true
				}
			}
		}

		if seq.Len() == 0 {
			return nil
		}
		written := make(map[insn.Datum]bool, len(liveOut))
		for i := 0; i < seq.Len(); i++ {
			in := seq.At(i)
			for _, d := range liveOut {
				if in.Writes(d) {
					written[d] = true
				}
			}
		}
		for _, d := range liveOut {
			if !written[d] {
				return &Fixup{Offset: seq.LastOffset(), Advance: NextOpcode, Reason: "dataflow: " + string(d) + " never written"}
			}
		}
		return nil
	}
}

// PairLoader is implemented by instructions that load an immediate
// 16-bit (or wider) value into a register pair in one step. Register
// pair pruning uses it to find dead loads.
type PairLoader interface {
	// PairLoad reports the (high, low) datums of the pair this
	// instruction loads, and whether this instruction is such a load
	// at all.
	PairLoad() (hi, lo insn.Datum, ok bool)
}

// RegisterPairPruning implements the optional analyzer from spec.md
// 4.3.7: a 16-bit immediate load into a register pair is dead code
// unless both halves are later read. Instructions that don't implement
// PairLoader are skipped (this analyzer has nothing to say about them).
func RegisterPairPruning() Analyzer {
	return func(seq *insn.Sequence) *Fixup {
		for i := 0; i < seq.Len(); i++ {
			pl, ok := seq.At(i).(PairLoader)
			if !ok {
				continue
			}
			hi, lo, isPairLoad := pl.PairLoad()
			if !isPairLoad {
				continue
			}
			readHi, readLo := false, false
			for j := i + 1; j < seq.Len(); j++ {
				nxt := seq.At(j)
				if nxt.Reads(hi) {
					readHi = true
				}
				if nxt.Reads(lo) {
					readLo = true
				}
			}
			if !(readHi && readLo) {
				return &Fixup{Offset: i, Advance: NextOpcode, Reason: "register-pair pruning"}
			}
		}
		return nil
	}
}

// PeepholeChecker is implemented by instructions whose combination with
// the instruction that immediately follows is a known dead pattern
// (redundant flag toggle, same-register transfer, load-then-overwrite).
type PeepholeChecker interface {
	// DeadBefore reports whether this instruction is made redundant by
	// the instruction that immediately follows it.
	DeadBefore(next insn.Instruction) bool
}

// Peephole rejects any adjacent pair matching a PeepholeChecker's dead
// pattern, advancing past the first member's opcode family.
func Peephole() Analyzer {
	return func(seq *insn.Sequence) *Fixup {
		for i := 0; i+1 < seq.Len(); i++ {
			pc, ok := seq.At(i).(PeepholeChecker)
			if !ok {
				continue
			}
			if pc.DeadBefore(seq.At(i + 1)) {
				return &Fixup{Offset: i, Advance: NextOpcode, Reason: "peephole"}
			}
		}
		return nil
	}
}

// DeadRegisterWrites rejects any instruction that writes (without also
// reading) a register from universe which is not read before it is
// overwritten or the sequence ends, and which isn't one of liveOut. This generalises
// the seed scenario in spec.md 8.6: a register loaded and never used.
func DeadRegisterWrites(universe, liveOut []insn.Datum) Analyzer {
	isLiveOut := make(map[insn.Datum]bool, len(liveOut))
	for _, d := range liveOut {
		isLiveOut[d] = true
	}
	return func(seq *insn.Sequence) *Fixup {
		for i := 0; i < seq.Len(); i++ {
			in := seq.At(i)
			for _, d := range universe {
				if isLiveOut[d] {
					continue
				}
				if !in.Writes(d) || in.Reads(d) {
					continue
				}
				usedLater := false
				for j := i + 1; j < seq.Len(); j++ {
					nxt := seq.At(j)
					if nxt.Reads(d) {
						usedLater = true
						break
					}
					if nxt.Writes(d) && !nxt.Reads(d) {
						break
					}
				}
				if !usedLater {
					return &Fixup{Offset: i, Advance: NextOpcode, Reason: "dead register write: " + string(d)}
				}
			}
		}
		return nil
	}
}
