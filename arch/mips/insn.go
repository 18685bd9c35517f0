// Package mips implements the Instruction, Emulator and calling-
// convention types for the MIPS O32 ABI (arguments in $a0-$a3, the
// result in $v0, JR $ra as the return instruction), grounded on
// original_source/src/mips/{o32,emu,subroutine}.rs for semantics and
// other_examples/danielcbailey-MIPSEmulator/emulator.go for Go
// register-file and decode-loop shape.
//
// As with arch/arm, every instruction is a single fixed-width word (32
// bits here) with any immediate baked directly into that word, rather
// than a separate trailing operand.
package mips

import (
	"errors"
	"fmt"

	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

const (
	Zero insn.Datum = "ZERO"
	V0   insn.Datum = "V0"
	A0   insn.Datum = "A0"
	A1   insn.Datum = "A1"
	A2   insn.Datum = "A2"
	A3   insn.Datum = "A3"
	RA   insn.Datum = "RA"
)

// reg enumerates the registers this reduced table can name: $zero, the
// O32 result register $v0, and the four O32 argument registers.
var reg = [...]insn.Datum{Zero, V0, A0, A1, A2, A3}
var regNum = [...]byte{0, 2, 4, 5, 6, 7}

func regCode(d insn.Datum) (code byte, ok bool) {
	for i, r := range reg {
		if r == d {
			return regNum[i], true
		}
	}
	return 0, false
}

func regFromCode(code byte) (insn.Datum, bool) {
	for i, n := range regNum {
		if n == code {
			return reg[i], true
		}
	}
	return "", false
}

type kind int

const (
	kindNop kind = iota
	kindJr
	kindAddiu // rt = rs + imm16 (sign-extended)
	kindAddu  // rd = rs + rt
)

type opClass struct {
	kind    kind
	hasImm16 bool
	dest    insn.Datum // rt for addiu, rd for addu
	src     insn.Datum // rs
	src2    insn.Datum // rt, addu only
}

var opcodes = map[uint32]opClass{}
var order []uint32

func addOp(base uint32, c opClass) {
	if _, dup := opcodes[base]; dup {
		panic(fmt.Sprintf("mips: duplicate base word %#08x", base))
	}
	opcodes[base] = c
	order = append(order, base)
}

func init() {
	addOp(0x00000000, opClass{kind: kindNop}) // sll $0,$0,0
	addOp(0x03E00008, opClass{kind: kindJr})   // jr $ra

	// ADDIU rt,rs,imm16: opcode 001001.
	for _, rs := range reg {
		rsCode, _ := regCode(rs)
		for _, rt := range reg {
			rtCode, _ := regCode(rt)
			base := uint32(9)<<26 | uint32(rsCode)<<21 | uint32(rtCode)<<16
			addOp(base, opClass{kind: kindAddiu, hasImm16: true, dest: rt, src: rs})
		}
	}

	// ADDU rd,rs,rt: opcode 0, funct 100001.
	for _, rd := range reg {
		rdCode, _ := regCode(rd)
		for _, rs := range reg {
			rsCode, _ := regCode(rs)
			for _, rt := range reg {
				rtCode, _ := regCode(rt)
				word := uint32(rsCode)<<21 | uint32(rtCode)<<16 | uint32(rdCode)<<11 | 0x21
				addOp(word, opClass{kind: kindAddu, dest: rd, src: rs, src2: rt})
			}
		}
	}
}

func orderIndex(word uint32) int {
	for i, w := range order {
		if w == word {
			return i
		}
	}
	panic(fmt.Sprintf("mips: word %#08x not in table", word))
}

// baseOf strips a possible 16-bit immediate back to its class's base
// word, mirroring arch/arm's baseOf.
func baseOf(word uint32) uint32 {
	if c, ok := opcodes[word&0xFFFF0000]; ok && c.hasImm16 {
		return word & 0xFFFF0000
	}
	return word
}

// Insn is one 32-bit MIPS instruction.
type Insn struct {
	word uint32
}

func First() insn.Instruction { return &Insn{word: order[0]} }

func (i *Insn) class() opClass { return opcodes[baseOf(i.word)] }

func (i *Insn) Length() int { return 4 }

// Encode returns the instruction's four bytes, big-endian (this
// package's own internal convention; nothing outside it inspects byte
// order directly).
func (i *Insn) Encode() []byte {
	w := i.word
	return []byte{byte(w >> 24), byte(w >> 16), byte(w >> 8), byte(w)}
}

func (i *Insn) Clone() insn.Instruction {
	c := *i
	return &c
}

var ErrEnd = errors.New("mips: end of encoding space")

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
	if !c.hasImm16 {
		return i.NextOpcode()
	}
	imm := uint16(i.word)
	imm++
	i.word = (i.word &^ 0xFFFF) | uint32(imm)
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
	case kindJr:
		return "JR $ra"
	case kindAddiu:
		return fmt.Sprintf("ADDIU %s,%s,%d", c.dest, c.src, int16(i.word))
	case kindAddu:
		return fmt.Sprintf("ADDU %s,%s,%s", c.dest, c.src, c.src2)
	}
	return "???"
}

func (i *Insn) Reads(d insn.Datum) bool {
	c := i.class()
	switch c.kind {
	case kindJr:
		return d == RA
	case kindAddiu:
		return c.src == d
	case kindAddu:
		return c.src == d || c.src2 == d
	default:
		return false
	}
}

func (i *Insn) Writes(d insn.Datum) bool {
	c := i.class()
	switch c.kind {
	case kindAddiu, kindAddu:
		return c.dest == d && d != Zero
	default:
		return false
	}
}

func (i *Insn) IsFlowControl() bool       { return i.class().kind == kindJr }
func (i *Insn) IsImpure() bool            { return false }
func (i *Insn) IsReturn() bool            { return i.class().kind == kindJr }
func (i *Insn) BranchOffset() (int, bool) { return 0, false }

func (i *Insn) soleDest() (insn.Datum, bool) {
	c := i.class()
	if c.kind == kindAddiu && c.dest != Zero {
		return c.dest, true
	}
	return "", false
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
// low-halfword immediate, when this word's class carries one.
func (i *Insn) MutateBits(rng *search.Lcg) {
	if !i.class().hasImm16 {
		return
	}
	bit := rng.Intn(16)
	i.word ^= 1 << uint(bit)
}

// Random returns a uniformly-chosen word from the table with a freshly
// randomized immediate, for search.Stochastic's insert/replace moves.
func Random(rng *search.Lcg) insn.Instruction {
	base := order[rng.Intn(len(order))]
	i := &Insn{word: base}
	if i.class().hasImm16 {
		i.word = (base &^ 0xFFFF) | uint32(rng.Intn(1<<16))
	}
	return i
}
