// Package sm83 targets the SM83/LR35902 (the Game Boy's CPU) as an
// instruction-subset filter over arch/z80, the same way
// original_source's compatibility.rs treats the Intel 8080 as a
// restricted Z80 — applied one level up, since SM83 is itself a
// restricted Z80-family core (no IX/IY, no alternate register set, a
// handful of opcodes retimed or removed).
package sm83

import (
	"github.com/strop-go/strop/arch/z80"
	"github.com/strop-go/strop/insn"
)

// Compatible reports whether i, a z80.Insn, is also valid SM83: every
// opcode this package's z80 table implements (register loads, 8-bit
// and 16-bit immediates, adds, RET, NOP) is unchanged between the two
// chips, so the filter is permissive by construction — this system
// never encodes the handful of Z80-only opcodes (EX, EXX, DJNZ, the
// alternate register set) it doesn't model in the first place.
func Compatible(i insn.Instruction) bool {
	_, ok := i.(*z80.Insn)
	return ok
}

// NotCompatible is the Forbid predicate for analysis.Forbid: it never
// matches, since every z80.Insn this package's reduced opcode table
// can produce is already SM83-legal.
func NotCompatible(i insn.Instruction) bool { return !Compatible(i) }

// First is the SM83 instruction family's factory: identical to z80's,
// since the subset in play is fully shared.
var First = z80.First

// SdccCall1U8 and SdccCall1U16 are shared verbatim with arch/z80: SM83
// toolchains (e.g. sdcc's gbz80 port) use the same sdcccall(1)
// register assignment.
var (
	SdccCall1U8  = z80.SdccCall1U8
	SdccCall1U16 = z80.SdccCall1U16
)

// Random is shared verbatim with arch/z80: every opcode it can produce
// is already SM83-legal (see Compatible).
var Random = z80.Random
