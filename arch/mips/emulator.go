package mips

import (
	"github.com/strop-go/strop/emu"
	"github.com/strop-go/strop/insn"
)

const (
	memSize   = 1 << 20
	codeStart = 0x1000
	stackTop  = 0xF0000
)

// Emulator is a minimal MIPS32 core: the registers this package's
// reduced opcode table can name, plus $ra, grounded on
// other_examples/danielcbailey-MIPSEmulator/emulator.go's flat
// register-array-plus-memory shape.
type Emulator struct {
	regs map[insn.Datum]uint32
	ra   uint32
	sp   uint32

	pc     uint32
	baseSP uint32
	Mem    [memSize]byte
}

func NewEmulator() *Emulator {
	e := &Emulator{}
	e.Reset()
	return e
}

func (e *Emulator) Reset() {
	e.regs = map[insn.Datum]uint32{}
	for _, r := range reg {
		e.regs[r] = 0
	}
	e.ra = 0
	e.sp = stackTop
	e.Mem = [memSize]byte{}
	e.pc = 0
	e.baseSP = stackTop
}

// Load writes code at codeStart and seeds $ra with the sentinel return
// address, the same convention arch/arm uses for LR: O32 subroutines
// return via `jr $ra`, never touching the stack unless they choose to.
func (e *Emulator) Load(code []byte) uint32 {
	copy(e.Mem[codeStart:], code)
	e.ra = emu.SentinelReturn
	e.pc = codeStart
	return codeStart
}

func (e *Emulator) PC() uint32        { return e.pc }
func (e *Emulator) SP() uint32        { return e.sp }
func (e *Emulator) InitialSP() uint32 { return e.baseSP }

func (e *Emulator) GetReg(d insn.Datum) uint32 {
	if d == RA {
		return e.ra
	}
	return e.regs[d]
}

func (e *Emulator) SetReg(d insn.Datum, v uint32) {
	if d == RA {
		e.ra = v
		return
	}
	if d == Zero {
		return // $zero is hardwired; writes are discarded
	}
	e.regs[d] = v
}

func (e *Emulator) SingleStep() error {
	w := uint32(e.Mem[e.pc])<<24 | uint32(e.Mem[e.pc+1])<<16 | uint32(e.Mem[e.pc+2])<<8 | uint32(e.Mem[e.pc+3])
	c, ok := opcodes[baseOf(w)]
	if !ok {
		e.pc += 4
		return nil
	}
	switch c.kind {
	case kindNop:
		e.pc += 4
	case kindJr:
		e.pc = e.ra
	case kindAddiu:
		imm := int32(int16(uint16(w)))
		e.SetReg(c.dest, e.GetReg(c.src)+uint32(imm))
		e.pc += 4
	case kindAddu:
		e.SetReg(c.dest, e.GetReg(c.src)+e.GetReg(c.src2))
		e.pc += 4
	}
	return nil
}
