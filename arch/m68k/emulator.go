package m68k

import (
	"github.com/strop-go/strop/emu"
	"github.com/strop-go/strop/insn"
)

const (
	memSize   = 1 << 20
	codeStart = 0x1000
	stackTop  = 0xF0000
)

// Emulator is a minimal 68000 core: eight data registers, a stack
// pointer and a flat address space, enough to execute this package's
// reduced opcode table. It follows the teacher's cpu.CPU shape (a
// plain register-file struct plus a byte-addressed Mem, big-endian
// throughout) without the teacher's full decode table or interrupt/SR
// handling, neither of which this system's straight-line subroutines
// exercise.
type Emulator struct {
	D   [8]uint32
	A7  uint32 // stack pointer; A0-A6 aren't modeled, this table never touches them
	Mem [memSize]byte

	pc     uint32
	baseSP uint32
}

func NewEmulator() *Emulator {
	e := &Emulator{}
	e.Reset()
	return e
}

func (e *Emulator) Reset() {
	e.D = [8]uint32{}
	e.A7 = stackTop
	e.Mem = [memSize]byte{}
	e.pc = 0
	e.baseSP = stackTop
}

// Load writes code at codeStart and pushes a sentinel return address
// onto the stack, the same role as arch/z80's two-byte sentinel at
// (SP), but here a full 32-bit big-endian word, matching how opRTS
// reads a return address off the stack in the teacher's cpu/flow.go.
func (e *Emulator) Load(code []byte) uint32 {
	copy(e.Mem[codeStart:], code)
	e.A7 -= 4
	e.writeU32(e.A7, emu.SentinelReturn)
	e.pc = codeStart
	return codeStart
}

func (e *Emulator) PC() uint32        { return e.pc }
func (e *Emulator) SP() uint32        { return e.A7 }
func (e *Emulator) InitialSP() uint32 { return e.baseSP }

func (e *Emulator) readU32(addr uint32) uint32 {
	m := e.Mem[addr : addr+4]
	return uint32(m[0])<<24 | uint32(m[1])<<16 | uint32(m[2])<<8 | uint32(m[3])
}

func (e *Emulator) writeU32(addr uint32, v uint32) {
	m := e.Mem[addr : addr+4]
	m[0] = byte(v >> 24)
	m[1] = byte(v >> 16)
	m[2] = byte(v >> 8)
	m[3] = byte(v)
}

// GetD32/SetD32 read and write a data register by Datum, for calling
// conventions and tests.
func (e *Emulator) GetD32(d insn.Datum) uint32 {
	code, _ := dataRegCode(d)
	return e.D[code]
}

func (e *Emulator) SetD32(d insn.Datum, v uint32) {
	code, _ := dataRegCode(d)
	e.D[code] = v
}

// SingleStep decodes and executes the instruction at pc, mirroring the
// teacher's opRTS (RTS reads a 32-bit return address from A7, big-
// endian, advances A7 by 4, and sets PC to it).
func (e *Emulator) SingleStep() error {
	hi, lo := e.Mem[e.pc], e.Mem[e.pc+1]
	sel2 := key([]byte{hi, lo})
	sel1 := key([]byte{hi})

	if c, ok := opcodes[sel1]; ok && c.selectorLen == 1 {
		// MOVEQ: the low byte of the opcode word is the immediate.
		v := int32(int8(lo))
		e.SetD32(c.dest, uint32(v))
		e.pc += 2
		return nil
	}

	c, ok := opcodes[sel2]
	if !ok {
		e.pc += 2 // unrecognised word idles like a NOP; caught by RunLoop's bounds check
		return nil
	}
	switch c.kind {
	case kindNop:
		e.pc += 2
	case kindRts:
		ret := e.readU32(e.A7)
		e.A7 += 4
		e.pc = ret
	case kindMoveLImm:
		v := e.readU32(e.pc + 2)
		e.SetD32(c.dest, v)
		e.pc += 6
	case kindMoveLReg:
		e.SetD32(c.dest, e.GetD32(c.src))
		e.pc += 2
	case kindAddLReg:
		e.SetD32(c.dest, e.GetD32(c.dest)+e.GetD32(c.src))
		e.pc += 2
	}
	return nil
}
