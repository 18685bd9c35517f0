// Package m68k implements the Instruction, Emulator and calling-
// convention types for the Motorola 68000, under a regparm-style
// calling convention (spec.md 4.7), adapted from the teacher's cpu
// package (register file shape, big-endian memory access, the
// RTS/opRTS return-detection check in cpu/flow.go).
//
// As with arch/z80, the opcode table is a deliberately reduced subset
// of the full 68000 instruction set: MOVEQ and MOVE.L immediate loads,
// register-to-register MOVE.L and ADD.L, NOP and RTS. The teacher's own
// cpu/decode.go decodes the machine's entire instruction set from a
// parsed-node model built for disassembly and single-shot execution,
// not for enumerate-and-mutate; reusing its parser here would mean
// bolting Next/NextOpcode onto a node tree never designed for either,
// so this table is built directly against the 68000's real bit-field
// formulas instead (the same approach arch/z80 takes), while keeping
// the teacher's register file and execution conventions.
package m68k

import (
	"errors"
	"fmt"

	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

// Register datums. D0-D7 are the 68000's data registers; regparm-style
// ABIs here pass the first 32-bit argument and result in D0.
const (
	D0 insn.Datum = "D0"
	D1 insn.Datum = "D1"
	D2 insn.Datum = "D2"
	D3 insn.Datum = "D3"
	D4 insn.Datum = "D4"
	D5 insn.Datum = "D5"
	D6 insn.Datum = "D6"
	D7 insn.Datum = "D7"
)

var dataReg = [8]insn.Datum{D0, D1, D2, D3, D4, D5, D6, D7}

func dataRegCode(d insn.Datum) (code byte, ok bool) {
	for i, r := range dataReg {
		if r == d {
			return byte(i), true
		}
	}
	return 0, false
}

type kind int

const (
	kindNop kind = iota
	kindRts
	kindMoveq     // MOVEQ #imm8,Dn — one-byte selector encodes Dn, immLen 1 (the opcode word's low byte IS the immediate)
	kindMoveLImm  // MOVE.L #imm32,Dn
	kindMoveLReg  // MOVE.L Ds,Dd
	kindAddLReg   // ADD.L Ds,Dd
)

type opClass struct {
	kind kind
	// selectorLen is how many of the leading bytes make up this
	// class's fixed-shape selector (1 for MOVEQ, whose second selector
	// byte is really the mutable immediate; 2 for every plain 16-bit
	// opcode word).
	selectorLen int
	immLen      int
	dest        insn.Datum
	src         insn.Datum
}

var opcodes = map[string]opClass{}
var order []string // selector bytes, as map keys, in table-build order

func key(b []byte) string { return string(b) }

func addOp(selector []byte, c opClass) {
	k := key(selector)
	if _, dup := opcodes[k]; dup {
		panic(fmt.Sprintf("m68k: duplicate selector %x", selector))
	}
	c.selectorLen = len(selector)
	opcodes[k] = c
	order = append(order, k)
}

func init() {
	addOp([]byte{0x4E, 0x71}, opClass{kind: kindNop})
	addOp([]byte{0x4E, 0x75}, opClass{kind: kindRts})

	// MOVEQ #imm8,Dn: word = 0111 ddd 0 iiiiiiii. The high byte alone
	// (0x70 | d<<1) selects "MOVEQ into Dn"; the low byte is the whole
	// immediate, so it plays the role of arch/z80's immLen byte even
	// though it lives inside what's nominally the same 16-bit opcode
	// word.
	for d := byte(0); d < 8; d++ {
		addOp([]byte{0x70 | d<<1}, opClass{kind: kindMoveq, immLen: 1, dest: dataReg[d]})
	}

	// MOVE.L #imm32,Dn: word = 0x203C | d<<9, 32-bit immediate follows.
	for d := byte(0); d < 8; d++ {
		hi := byte(0x20 | d<<1)
		addOp([]byte{hi, 0x3C}, opClass{kind: kindMoveLImm, immLen: 4, dest: dataReg[d]})
	}

	// MOVE.L Ds,Dd: word = 0x2000 | d<<9 | s.
	for d := byte(0); d < 8; d++ {
		for s := byte(0); s < 8; s++ {
			word := uint16(0x2000) | uint16(d)<<9 | uint16(s)
			addOp([]byte{byte(word >> 8), byte(word)}, opClass{kind: kindMoveLReg, dest: dataReg[d], src: dataReg[s]})
		}
	}

	// ADD.L Ds,Dd (Dd = Dd + Ds): word = 0xD080 | d<<9 | s.
	for d := byte(0); d < 8; d++ {
		for s := byte(0); s < 8; s++ {
			word := uint16(0xD080) | uint16(d)<<9 | uint16(s)
			addOp([]byte{byte(word >> 8), byte(word)}, opClass{kind: kindAddLReg, dest: dataReg[d], src: dataReg[s]})
		}
	}
}

func orderIndex(k string) int {
	for i, o := range order {
		if o == k {
			return i
		}
	}
	panic("m68k: selector not in table: " + fmt.Sprintf("%x", k))
}

// maxLen is the widest encoding this table produces: a 2-byte selector
// plus a 4-byte immediate (MOVE.L #imm32,Dn).
const maxLen = 6

// Insn is a 68000 instruction: a fixed 6-byte buffer, decoded on
// demand from its selector bytes.
type Insn struct {
	raw [maxLen]byte
}

// First returns the table's first entry with its immediate bytes
// zeroed: the Sequence factory for this architecture.
func First() insn.Instruction {
	var i Insn
	copy(i.raw[:], order[0])
	return &i
}

func (i *Insn) selector() string {
	// Every class's selectorLen is 1 or 2; scanning both lets class()
	// find the right table entry without storing selectorLen alongside
	// the raw bytes.
	if c, ok := opcodes[key(i.raw[:1])]; ok && c.selectorLen == 1 {
		return key(i.raw[:1])
	}
	return key(i.raw[:2])
}

func (i *Insn) class() opClass { return opcodes[i.selector()] }

func (i *Insn) Length() int {
	c := i.class()
	return c.selectorLen + c.immLen
}

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

// ErrEnd mirrors arch/z80's end-of-family sentinel.
var ErrEnd = errors.New("m68k: end of encoding space")

// NextOpcode advances straight to the next class in the table,
// zeroing every byte beyond the new selector.
func (i *Insn) NextOpcode() error {
	idx := orderIndex(i.selector())
	if idx+1 >= len(order) {
		return ErrEnd
	}
	var next [maxLen]byte
	copy(next[:], order[idx+1])
	i.raw = next
	return nil
}

// Next advances the current class's immediate bytes (big-endian,
// matching the teacher's WordsToBytes/BytesToWords convention and
// insn.IncrementBytes's big-counter design directly, unlike arch/z80
// which needed a little-endian variant) before falling back to
// NextOpcode on overflow.
func (i *Insn) Next() error {
	c := i.class()
	if c.immLen == 0 {
		return i.NextOpcode()
	}
	imm := i.raw[c.selectorLen : c.selectorLen+c.immLen]
	if !insn.IncrementBytes(imm) {
		return nil
	}
	return i.NextOpcode()
}

func (i *Insn) String() string {
	c := i.class()
	switch c.kind {
	case kindNop:
		return "NOP"
	case kindRts:
		return "RTS"
	case kindMoveq:
		return fmt.Sprintf("MOVEQ #%d,%s", int8(i.raw[1]), c.dest)
	case kindMoveLImm:
		v := uint32(i.raw[2])<<24 | uint32(i.raw[3])<<16 | uint32(i.raw[4])<<8 | uint32(i.raw[5])
		return fmt.Sprintf("MOVE.L #%#08x,%s", v, c.dest)
	case kindMoveLReg:
		return fmt.Sprintf("MOVE.L %s,%s", c.src, c.dest)
	case kindAddLReg:
		return fmt.Sprintf("ADD.L %s,%s", c.src, c.dest)
	}
	return "???"
}

func (i *Insn) Reads(d insn.Datum) bool {
	c := i.class()
	switch c.kind {
	case kindMoveLReg:
		return c.src == d
	case kindAddLReg:
		return c.src == d || c.dest == d
	default:
		return false
	}
}

func (i *Insn) Writes(d insn.Datum) bool {
	c := i.class()
	switch c.kind {
	case kindMoveq, kindMoveLImm, kindMoveLReg, kindAddLReg:
		return c.dest == d
	default:
		return false
	}
}

func (i *Insn) IsFlowControl() bool { return i.class().kind == kindRts }
func (i *Insn) IsImpure() bool     { return false }
func (i *Insn) IsReturn() bool     { return i.class().kind == kindRts }
func (i *Insn) BranchOffset() (int, bool) { return 0, false }

// soleDest mirrors arch/z80's peephole helper: the single register an
// instruction unconditionally overwrites with a value it doesn't
// derive from that register's own prior contents.
func (i *Insn) soleDest() (insn.Datum, bool) {
	switch i.class().kind {
	case kindMoveq, kindMoveLImm, kindMoveLReg:
		return i.class().dest, true
	default:
		return "", false
	}
}

// DeadBefore implements analysis.PeepholeChecker, identically in
// spirit to arch/z80's.
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

// MutateBits implements search.Mutator: flips one random bit among the
// instruction's immediate bytes, leaving the selector (and hence the
// instruction's kind) untouched.
func (i *Insn) MutateBits(rng *search.Lcg) {
	c := i.class()
	if c.immLen == 0 {
		return
	}
	bit := rng.Intn(c.immLen * 8)
	i.raw[c.selectorLen+bit/8] ^= 1 << uint(bit%8)
}

// Random returns a uniformly-chosen class from the table with freshly
// randomized immediate bytes, for search.Stochastic's insert/replace
// moves.
func Random(rng *search.Lcg) insn.Instruction {
	var i Insn
	copy(i.raw[:], order[rng.Intn(len(order))])
	c := i.class()
	for k := 0; k < c.immLen; k++ {
		i.raw[c.selectorLen+k] = byte(rng.Intn(256))
	}
	return &i
}
