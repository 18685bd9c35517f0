package mos6502

import (
	"github.com/strop-go/strop/callconv"
	"github.com/strop-go/strop/insn"
)

// LlvmMosU8 is the calling-convention binding for `fn(u8) -> u8` under
// llvm-mos's convention: the first 8-bit argument and the result both
// live in A.
var LlvmMosU8 = callconv.Binding[*Emulator, uint8, uint8]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint8) { e.SetA(p) },
	Get:     func(e *Emulator) uint8 { return e.GetA() },
	LiveIn:  []insn.Datum{A},
	LiveOut: []insn.Datum{A},
}

// LlvmMosU16 is the calling-convention binding for `fn(u16) -> u16`:
// the first 16-bit argument and the result both live in the AX pair.
var LlvmMosU16 = callconv.Binding[*Emulator, uint16, uint16]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint16) { e.SetAX(p) },
	Get:     func(e *Emulator) uint16 { return e.GetAX() },
	LiveIn:  []insn.Datum{A, X},
	LiveOut: []insn.Datum{A, X},
}
