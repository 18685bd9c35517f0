package mos6502

import (
	"github.com/strop-go/strop/emu"
)

const (
	memSize   = 1 << 16
	codeStart = 0x0800
	stackBase = 0x0100 // page 1, the 6502's fixed hardware stack
)

// Emulator is a minimal 6502 core: A/X/Y plus an 8-bit stack pointer
// indexing into the fixed page-1 stack, grounded on the register shape
// in other_examples/ 6502 cores (beevik-go6502, jawr-mos6502) and
// original_source/src/m6502/emulator.rs's thin Emulator-wraps-CPU
// shape.
type Emulator struct {
	regA, regX, regY byte
	Mem              [memSize]byte

	pc  uint16
	sp  byte
	initialSP uint16
}

func NewEmulator() *Emulator {
	e := &Emulator{}
	e.Reset()
	return e
}

func (e *Emulator) Reset() {
	e.regA, e.regX, e.regY = 0, 0, 0
	e.Mem = [memSize]byte{}
	e.sp = 0xFF
	e.pc = 0
	e.initialSP = stackBase + uint16(e.sp)
}

// Load writes code at codeStart and pushes the sentinel return address
// minus one, little-endian low-then-high, the same way a real JSR
// would: RTS pulls the two bytes back and adds one before jumping,
// matching the 6502's off-by-one return convention.
func (e *Emulator) Load(code []byte) uint32 {
	copy(e.Mem[codeStart:], code)
	retMinus1 := uint16(emu.SentinelReturn) - 1
	e.push(byte(retMinus1 >> 8))
	e.push(byte(retMinus1))
	e.pc = codeStart
	return codeStart
}

func (e *Emulator) push(v byte) {
	e.Mem[stackBase+uint16(e.sp)] = v
	e.sp--
}

func (e *Emulator) pull() byte {
	e.sp++
	return e.Mem[stackBase+uint16(e.sp)]
}

func (e *Emulator) PC() uint32        { return uint32(e.pc) }
func (e *Emulator) SP() uint32        { return stackBase + uint32(e.sp) }
func (e *Emulator) InitialSP() uint32 { return uint32(e.initialSP) }

func (e *Emulator) GetA() byte { return e.regA }
func (e *Emulator) GetX() byte { return e.regX }
func (e *Emulator) GetY() byte { return e.regY }
func (e *Emulator) SetA(v byte) { e.regA = v }
func (e *Emulator) SetX(v byte) { e.regX = v }
func (e *Emulator) SetY(v byte) { e.regY = v }

// GetAX/SetAX implement the llvm-mos 16-bit parameter/return pairing:
// A is the low byte, X the high byte.
func (e *Emulator) GetAX() uint16 { return uint16(e.regA) | uint16(e.regX)<<8 }
func (e *Emulator) SetAX(v uint16) {
	e.regA = byte(v)
	e.regX = byte(v >> 8)
}

func (e *Emulator) SingleStep() error {
	op := e.Mem[e.pc]
	c, ok := opcodes[op]
	if !ok {
		e.pc++
		return nil
	}
	switch c.kind {
	case kindNop:
		e.pc++
	case kindRts:
		lo := e.pull()
		hi := e.pull()
		e.pc = (uint16(lo) | uint16(hi)<<8) + 1
	case kindLdaImm:
		e.regA = e.Mem[e.pc+1]
		e.pc += 2
	case kindLdxImm:
		e.regX = e.Mem[e.pc+1]
		e.pc += 2
	case kindLdyImm:
		e.regY = e.Mem[e.pc+1]
		e.pc += 2
	case kindTax:
		e.regX = e.regA
		e.pc++
	case kindTxa:
		e.regA = e.regX
		e.pc++
	case kindTay:
		e.regY = e.regA
		e.pc++
	case kindTya:
		e.regA = e.regY
		e.pc++
	case kindAdcImm:
		e.regA = e.regA + e.Mem[e.pc+1]
		e.pc += 2
	}
	return nil
}
