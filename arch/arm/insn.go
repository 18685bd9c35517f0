// Package arm implements the Instruction, Emulator and calling-
// convention types for the ARMv4T Thumb instruction set, under AAPCS32
// (spec.md's worked example applied to ARM's own register file:
// arguments and results in R0, BX LR as the return instruction, R4-R11
// callee-saved), grounded on original_source/src/armv4t/{isa,aapcs32,
// emu}.rs for semantics and on other_examples/'s ARM cores
// (JetSetIlly-Gopher2600's ARM7TDMI coprocessor, lookbusy1344's
// arm_emulator) for Go register-file and decode-loop shape.
//
// Every instruction here is a single 16-bit Thumb halfword: unlike
// arch/z80 and arch/m68k, nothing in this reduced subset carries a
// separate trailing immediate operand, so Insn models a word directly
// rather than a byte buffer.
package arm

import (
	"errors"
	"fmt"

	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

const (
	R0 insn.Datum = "R0"
	R1 insn.Datum = "R1"
	R2 insn.Datum = "R2"
	R3 insn.Datum = "R3"
	R4 insn.Datum = "R4"
	R5 insn.Datum = "R5"
	R6 insn.Datum = "R6"
	R7 insn.Datum = "R7"
	LR insn.Datum = "LR"
)

var lowReg = [8]insn.Datum{R0, R1, R2, R3, R4, R5, R6, R7}

func lowRegCode(d insn.Datum) (code byte, ok bool) {
	for i, r := range lowReg {
		if r == d {
			return byte(i), true
		}
	}
	return 0, false
}

type kind int

const (
	kindNop kind = iota
	kindBxLr
	kindMovImm8  // MOVS Rd,#imm8
	kindAddImm8  // ADDS Rd,#imm8 (Rd += imm8)
	kindMovReg   // MOVS Rd,Rs (via ADDS Rd,Rs,#0)
	kindAddReg3  // ADDS Rd,Rs,Rn
)

// opClass describes one family of Thumb words. base is the word with
// its immediate field (if any) zeroed; hasImm8 says whether the word's
// low byte is a free-varying 8-bit immediate, the same role
// arch/m68k's MOVEQ low byte plays.
type opClass struct {
	kind    kind
	hasImm8 bool
	dest    insn.Datum
	src     insn.Datum
	src2    insn.Datum // kindAddReg3 only
}

var opcodes = map[uint16]opClass{}
var order []uint16

func addOp(base uint16, c opClass) {
	if _, dup := opcodes[base]; dup {
		panic(fmt.Sprintf("arm: duplicate base word %#04x", base))
	}
	opcodes[base] = c
	order = append(order, base)
}

func init() {
	addOp(0x46C0, opClass{kind: kindNop})  // MOV R8,R8 (the ARMv4T Thumb NOP idiom)
	addOp(0x4770, opClass{kind: kindBxLr}) // BX LR

	// MOVS Rd,#imm8: 0010 0 ddd iiiiiiii.
	for d, r := range lowReg {
		addOp(0x2000|uint16(d)<<8, opClass{kind: kindMovImm8, hasImm8: true, dest: r})
	}

	// ADDS Rd,#imm8 (Rd += imm8): 0011 0 ddd iiiiiiii.
	for d, r := range lowReg {
		addOp(0x3000|uint16(d)<<8, opClass{kind: kindAddImm8, hasImm8: true, dest: r})
	}

	// MOVS Rd,Rs, encoded as ADDS Rd,Rs,#0: 0001 110 000 sss ddd.
	for d, dr := range lowReg {
		for s, sr := range lowReg {
			addOp(0x1C00|uint16(s)<<3|uint16(d), opClass{kind: kindMovReg, dest: dr, src: sr})
		}
	}

	// ADDS Rd,Rs,Rn: 0001 100 nnn sss ddd.
	for d, dr := range lowReg {
		for s, sr := range lowReg {
			for n, nr := range lowReg {
				word := uint16(0x1800) | uint16(n)<<6 | uint16(s)<<3 | uint16(d)
				addOp(word, opClass{kind: kindAddReg3, dest: dr, src: sr, src2: nr})
			}
		}
	}
}

func orderIndex(word uint16) int {
	for i, w := range order {
		if w == word {
			return i
		}
	}
	panic(fmt.Sprintf("arm: word %#04x not in table", word))
}

// baseOf returns word with its class's immediate field (if any)
// zeroed, the table key for that word's family.
func baseOf(word uint16) uint16 {
	if c, ok := opcodes[word&0xFF00]; ok && c.hasImm8 {
		return word & 0xFF00
	}
	return word
}

// Insn is one 16-bit Thumb instruction.
type Insn struct {
	word uint16
}

func First() insn.Instruction { return &Insn{word: order[0]} }

func (i *Insn) class() opClass { return opcodes[baseOf(i.word)] }

func (i *Insn) Length() int { return 2 }

func (i *Insn) Encode() []byte {
	return []byte{byte(i.word), byte(i.word >> 8)} // Thumb halfwords are little-endian in memory
}

func (i *Insn) Clone() insn.Instruction {
	c := *i
	return &c
}

var ErrEnd = errors.New("arm: end of encoding space")

func (i *Insn) NextOpcode() error {
	idx := orderIndex(baseOf(i.word))
	if idx+1 >= len(order) {
		return ErrEnd
	}
	i.word = order[idx+1]
	return nil
}

func (i *Insn) Next() error {
	c := i.class()
	if !c.hasImm8 {
		return i.NextOpcode()
	}
	imm := byte(i.word)
	imm++
	i.word = (i.word &^ 0xFF) | uint16(imm)
	if imm == 0 {
		return i.NextOpcode()
	}
	return nil
}

func (i *Insn) String() string {
	c := i.class()
	switch c.kind {
	case kindNop:
		return "NOP"
	case kindBxLr:
		return "BX LR"
	case kindMovImm8:
		return fmt.Sprintf("MOVS %s,#%d", c.dest, byte(i.word))
	case kindAddImm8:
		return fmt.Sprintf("ADDS %s,#%d", c.dest, byte(i.word))
	case kindMovReg:
		return fmt.Sprintf("MOVS %s,%s", c.dest, c.src)
	case kindAddReg3:
		return fmt.Sprintf("ADDS %s,%s,%s", c.dest, c.src, c.src2)
	}
	return "???"
}

func (i *Insn) Reads(d insn.Datum) bool {
	c := i.class()
	switch c.kind {
	case kindBxLr:
		return d == LR
	case kindAddImm8:
		return c.dest == d
	case kindMovReg:
		return c.src == d
	case kindAddReg3:
		return c.src == d || c.src2 == d
	default:
		return false
	}
}

func (i *Insn) Writes(d insn.Datum) bool {
	c := i.class()
	switch c.kind {
	case kindMovImm8, kindAddImm8, kindMovReg, kindAddReg3:
		return c.dest == d
	default:
		return false
	}
}

func (i *Insn) IsFlowControl() bool       { return i.class().kind == kindBxLr }
func (i *Insn) IsImpure() bool            { return false }
func (i *Insn) IsReturn() bool            { return i.class().kind == kindBxLr }
func (i *Insn) BranchOffset() (int, bool) { return 0, false }

func (i *Insn) soleDest() (insn.Datum, bool) {
	switch i.class().kind {
	case kindMovImm8, kindMovReg:
		return i.class().dest, true
	default:
		return "", false
	}
}

func (i *Insn) DeadBefore(next insn.Instruction) bool {
	d, ok := i.soleDest()
	if !ok {
		return false
	}
	nd, ok := next.(*Insn).soleDest()
	if !ok || nd != d {
		return false
	}
	return !next.Reads(d)
}

// MutateBits implements search.Mutator: flips one random bit of the
// low-byte immediate, when this word's class carries one.
func (i *Insn) MutateBits(rng *search.Lcg) {
	if !i.class().hasImm8 {
		return
	}
	bit := rng.Intn(8)
	i.word ^= 1 << uint(bit)
}

// Random returns a uniformly-chosen word from the table with a freshly
// randomized immediate, for search.Stochastic's insert/replace moves.
func Random(rng *search.Lcg) insn.Instruction {
	base := order[rng.Intn(len(order))]
	i := &Insn{word: base}
	if i.class().hasImm8 {
		i.word = (base &^ 0xFF) | uint16(rng.Intn(256))
	}
	return i
}
