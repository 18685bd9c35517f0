// Package mos6502 implements the Instruction, Emulator and calling-
// convention types for the MOS 6502, under the calling convention
// llvm-mos uses (the first 8-bit argument/result in A, the first
// 16-bit argument/result in the AX pair with A as the low byte),
// grounded on original_source/src/m6502/{llvm_mos,emulator}.rs and, for
// Go opcode-table shape, the other_examples/ 6502 cores (beevik-go6502,
// jawr-mos6502).
//
// Like arch/z80 and arch/m68k, this models a reduced opcode subset:
// immediate loads, accumulator/index transfers, immediate add-with-
// carry, RTS and NOP. No addressing modes beyond immediate and
// implied, no branches, no flag instructions beyond what ADC itself
// touches.
package mos6502

import (
	"errors"
	"fmt"

	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

const (
	A insn.Datum = "A"
	X insn.Datum = "X"
	Y insn.Datum = "Y"
)

type kind int

const (
	kindNop kind = iota
	kindRts
	kindLdaImm
	kindLdxImm
	kindLdyImm
	kindTax
	kindTxa
	kindTay
	kindTya
	kindAdcImm
)

type opClass struct {
	kind   kind
	immLen int
}

var opcodes = map[byte]opClass{}
var order []byte

func addOp(code byte, c opClass) {
	if _, dup := opcodes[code]; dup {
		panic(fmt.Sprintf("mos6502: duplicate opcode %#02x", code))
	}
	opcodes[code] = c
	order = append(order, code)
}

func init() {
	addOp(0xEA, opClass{kind: kindNop})
	addOp(0x60, opClass{kind: kindRts})
	addOp(0xA9, opClass{kind: kindLdaImm, immLen: 1})
	addOp(0xA2, opClass{kind: kindLdxImm, immLen: 1})
	addOp(0xA0, opClass{kind: kindLdyImm, immLen: 1})
	addOp(0xAA, opClass{kind: kindTax})
	addOp(0x8A, opClass{kind: kindTxa})
	addOp(0xA8, opClass{kind: kindTay})
	addOp(0x98, opClass{kind: kindTya})
	addOp(0x69, opClass{kind: kindAdcImm, immLen: 1})
}

func orderIndex(code byte) int {
	for i, c := range order {
		if c == code {
			return i
		}
	}
	panic(fmt.Sprintf("mos6502: opcode %#02x not in table", code))
}

// Insn is a 6502 instruction: opcode plus at most one immediate byte.
type Insn struct {
	raw [2]byte
}

func First() insn.Instruction { return &Insn{raw: [2]byte{order[0], 0}} }

func (i *Insn) class() opClass { return opcodes[i.raw[0]] }

func (i *Insn) Length() int { return 1 + i.class().immLen }

func (i *Insn) Encode() []byte {
	n := i.Length()
	out := make([]byte, n)
	copy(out, i.raw[:n])
	return out
}

func (i *Insn) Clone() insn.Instruction {
	c := *i
	return &c
}

var ErrEnd = errors.New("mos6502: end of encoding space")

func (i *Insn) NextOpcode() error {
	idx := orderIndex(i.raw[0])
	if idx+1 >= len(order) {
		return ErrEnd
	}
	i.raw = [2]byte{order[idx+1], 0}
	return nil
}

func (i *Insn) Next() error {
	if i.class().immLen == 0 {
		return i.NextOpcode()
	}
	if !insn.IncrementByteAt(i.raw[:], 1) {
		return nil
	}
	return i.NextOpcode()
}

func (i *Insn) String() string {
	switch i.class().kind {
	case kindNop:
		return "NOP"
	case kindRts:
		return "RTS"
	case kindLdaImm:
		return fmt.Sprintf("LDA #%#02x", i.raw[1])
	case kindLdxImm:
		return fmt.Sprintf("LDX #%#02x", i.raw[1])
	case kindLdyImm:
		return fmt.Sprintf("LDY #%#02x", i.raw[1])
	case kindTax:
		return "TAX"
	case kindTxa:
		return "TXA"
	case kindTay:
		return "TAY"
	case kindTya:
		return "TYA"
	case kindAdcImm:
		return fmt.Sprintf("ADC #%#02x", i.raw[1])
	}
	return "???"
}

func (i *Insn) Reads(d insn.Datum) bool {
	switch i.class().kind {
	case kindTax, kindTay, kindAdcImm:
		return d == A
	case kindTxa:
		return d == X
	case kindTya:
		return d == Y
	default:
		return false
	}
}

func (i *Insn) Writes(d insn.Datum) bool {
	switch i.class().kind {
	case kindLdaImm, kindTxa, kindTya, kindAdcImm:
		return d == A
	case kindLdxImm, kindTax:
		return d == X
	case kindLdyImm, kindTay:
		return d == Y
	default:
		return false
	}
}

func (i *Insn) IsFlowControl() bool       { return i.class().kind == kindRts }
func (i *Insn) IsImpure() bool            { return false }
func (i *Insn) IsReturn() bool            { return i.class().kind == kindRts }
func (i *Insn) BranchOffset() (int, bool) { return 0, false }

// soleDest and DeadBefore implement analysis.PeepholeChecker, the same
// way arch/z80's and arch/m68k's do.
func (i *Insn) soleDest() (insn.Datum, bool) {
	switch i.class().kind {
	case kindLdaImm, kindTxa, kindTya:
		return A, true
	case kindLdxImm, kindTax:
		return X, true
	case kindLdyImm, kindTay:
		return Y, true
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
// immediate byte, when this opcode has one.
func (i *Insn) MutateBits(rng *search.Lcg) {
	if i.class().immLen == 0 {
		return
	}
	bit := rng.Intn(8)
	i.raw[1] ^= 1 << uint(bit)
}

// Random returns a uniformly-chosen opcode with a freshly randomized
// immediate byte, for search.Stochastic's insert/replace moves.
func Random(rng *search.Lcg) insn.Instruction {
	code := order[rng.Intn(len(order))]
	i := &Insn{raw: [2]byte{code, 0}}
	if i.class().immLen > 0 {
		i.raw[1] = byte(rng.Intn(256))
	}
	return i
}
