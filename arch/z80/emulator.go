package z80

import (
	"github.com/strop-go/strop/emu"
	"github.com/strop-go/strop/insn"
)

// memSize, codeStart and stackTop are the well-known addresses spec.md
// 4.6 asks each architecture's emulator to fix: code always loads at
// the same place, and the stack always starts at the same resting
// depth.
const (
	memSize   = 1 << 16
	codeStart = 0x8000
	stackTop  = 0xFF00
)

// Emulator is a register-and-memory Z80 model: just enough of the chip
// to decode and execute this package's reduced instruction set. It
// implements emu.Adapter.
type Emulator struct {
	Mem [memSize]byte
	Reg [8]byte // indexed by the reg8 code (B,C,D,E,H,L,_,A)

	pc uint16
	sp uint16

	baseSP uint16
}

// NewEmulator returns a freshly reset Emulator.
func NewEmulator() *Emulator {
	e := &Emulator{}
	e.Reset()
	return e
}

// Reset zeroes every register and parks SP at stackTop.
func (e *Emulator) Reset() {
	e.Reg = [8]byte{}
	e.Mem = [memSize]byte{}
	e.pc = 0
	e.sp = stackTop
	e.baseSP = stackTop
}

// Load writes code at codeStart, pushes emu.SentinelReturn onto the
// stack (the address RET will pop back into PC), and returns
// codeStart.
func (e *Emulator) Load(code []byte) uint32 {
	copy(e.Mem[codeStart:], code)
	e.sp -= 2
	e.Mem[e.sp] = byte(emu.SentinelReturn & 0xFF)
	e.Mem[e.sp+1] = byte(emu.SentinelReturn >> 8)
	e.pc = codeStart
	return codeStart
}

// PC, SP and InitialSP satisfy emu.Adapter.
func (e *Emulator) PC() uint32        { return uint32(e.pc) }
func (e *Emulator) SP() uint32        { return uint32(e.sp) }
func (e *Emulator) InitialSP() uint32 { return uint32(e.baseSP) }

// GetA ... GetL read the named 8-bit register; SetA ... SetL
// write it. These are what z80's calling-convention bindings use to
// marshal Params/RetVal in and out.
func (e *Emulator) GetA() byte { return e.getReg(A) }
func (e *Emulator) GetB() byte { return e.getReg(B) }
func (e *Emulator) GetC() byte { return e.getReg(C) }
func (e *Emulator) GetD() byte { return e.getReg(D) }
func (e *Emulator) GetE() byte { return e.getReg(E) }
func (e *Emulator) GetH() byte { return e.getReg(H) }
func (e *Emulator) GetL() byte { return e.getReg(L) }

func (e *Emulator) SetA(v byte) { e.setReg(A, v) }
func (e *Emulator) SetB(v byte) { e.setReg(B, v) }
func (e *Emulator) SetC(v byte) { e.setReg(C, v) }
func (e *Emulator) SetD(v byte) { e.setReg(D, v) }
func (e *Emulator) SetE(v byte) { e.setReg(E, v) }
func (e *Emulator) SetH(v byte) { e.setReg(H, v) }
func (e *Emulator) SetL(v byte) { e.setReg(L, v) }

// GetHL and SetHL read/write the 16-bit register pair (H high, L low),
// used by sdcccall1's 16-bit argument and return slot.
func (e *Emulator) GetHL() uint16 {
	return uint16(e.getReg(H))<<8 | uint16(e.getReg(L))
}
func (e *Emulator) SetHL(v uint16) {
	e.setReg(H, byte(v>>8))
	e.setReg(L, byte(v))
}

// getReg and setReg translate a Datum to its reg8 code and index into
// Reg; d is always one of this package's own register constants, so
// the code is always found.
func (e *Emulator) getReg(d insn.Datum) byte {
	code, _ := reg8Code(d)
	return e.Reg[code]
}

func (e *Emulator) setReg(d insn.Datum, v byte) {
	code, _ := reg8Code(d)
	e.Reg[code] = v
}

// SingleStep decodes and executes the instruction at pc, advancing pc
// past it.
func (e *Emulator) SingleStep() error {
	op := e.Mem[e.pc]
	c, ok := opcodes[op]
	if !ok {
		// Unrecognised byte patterns (uninitialised memory beyond the
		// loaded sequence) idle as a one-byte NOP; a run that strays
		// this far is already headed out of the code window, which
		// RunLoop's bounds check catches on the next iteration.
		e.pc++
		return nil
	}

	switch c.kind {
	case kindNop:
		e.pc++
	case kindRet:
		lo := uint16(e.Mem[e.sp])
		hi := uint16(e.Mem[e.sp+1])
		e.sp += 2
		e.pc = lo | hi<<8
	case kindLoadImm8:
		e.setReg(c.dest, e.Mem[e.pc+1])
		e.pc += 2
	case kindLoadImm16:
		lo := e.Mem[e.pc+1]
		hi := e.Mem[e.pc+2]
		e.setReg(H, hi)
		e.setReg(L, lo)
		e.pc += 3
	case kindLoadRR:
		e.setReg(c.dest, e.getReg(c.src))
		e.pc++
	case kindAddReg:
		e.setReg(A, e.getReg(A)+e.getReg(c.src))
		e.pc++
	case kindAddImm8:
		e.setReg(A, e.getReg(A)+e.Mem[e.pc+1])
		e.pc += 2
	}
	return nil
}
