package arm

import (
	"github.com/strop-go/strop/emu"
	"github.com/strop-go/strop/insn"
)

const (
	memSize   = 1 << 20
	codeStart = 0x1000
	stackTop  = 0xF0000
)

// Emulator is a minimal ARMv4T Thumb core: the eight low registers
// plus LR and SP, grounded on the register-file shape in
// other_examples/'s ARM cores (JetSetIlly-Gopher2600's ARM7TDMI
// coprocessor, lookbusy1344's arm_emulator) and
// original_source/src/armv4t/emu.rs's sentinel-return convention.
type Emulator struct {
	R  [8]uint32
	lr uint32
	sp uint32

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
	e.R = [8]uint32{}
	e.lr = 0
	e.sp = stackTop
	e.Mem = [memSize]byte{}
	e.pc = 0
	e.baseSP = stackTop
}

// Load writes code at codeStart and seeds LR with the sentinel return
// address, the same role played by arch/z80's stack-slot sentinel and
// arch/m68k's pushed return address, but here simply a register (ARM
// subroutines return via `BX LR`, never touching the stack unless they
// themselves choose to).
func (e *Emulator) Load(code []byte) uint32 {
	copy(e.Mem[codeStart:], code)
	e.lr = emu.SentinelReturn
	e.pc = codeStart
	return codeStart
}

func (e *Emulator) PC() uint32        { return e.pc }
func (e *Emulator) SP() uint32        { return e.sp }
func (e *Emulator) InitialSP() uint32 { return e.baseSP }

func (e *Emulator) GetReg(d insn.Datum) uint32 {
	if d == LR {
		return e.lr
	}
	code, _ := lowRegCode(d)
	return e.R[code]
}

func (e *Emulator) SetReg(d insn.Datum, v uint32) {
	if d == LR {
		e.lr = v
		return
	}
	code, _ := lowRegCode(d)
	e.R[code] = v
}

func (e *Emulator) SingleStep() error {
	word := uint16(e.Mem[e.pc]) | uint16(e.Mem[e.pc+1])<<8
	c, ok := opcodes[baseOf(word)]
	if !ok {
		e.pc += 2
		return nil
	}
	switch c.kind {
	case kindNop:
		e.pc += 2
	case kindBxLr:
		e.pc = e.lr
	case kindMovImm8:
		e.SetReg(c.dest, uint32(byte(word)))
		e.pc += 2
	case kindAddImm8:
		e.SetReg(c.dest, e.GetReg(c.dest)+uint32(byte(word)))
		e.pc += 2
	case kindMovReg:
		e.SetReg(c.dest, e.GetReg(c.src))
		e.pc += 2
	case kindAddReg3:
		e.SetReg(c.dest, e.GetReg(c.src)+e.GetReg(c.src2))
		e.pc += 2
	}
	return nil
}
