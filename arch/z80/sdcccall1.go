package z80

import (
	"github.com/strop-go/strop/callconv"
	"github.com/strop-go/strop/insn"
)

// SdccCall1U8 is the calling-convention binding for `fn(u8) -> u8`
// under sdcccall(1): the first 8-bit argument goes in A, the result
// comes back in A (spec.md 4.7's worked example, and seed test 1).
var SdccCall1U8 = callconv.Binding[*Emulator, uint8, uint8]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint8) { e.SetA(p) },
	Get:     func(e *Emulator) uint8 { return e.GetA() },
	LiveIn:  []insn.Datum{A},
	LiveOut: []insn.Datum{A},
}

// SdccCall1U16 is the calling-convention binding for `fn(u16) -> u16`
// under sdcccall(1): the first 16-bit argument goes in HL, the result
// comes back in HL (seed tests 2 and 3).
var SdccCall1U16 = callconv.Binding[*Emulator, uint16, uint16]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint16) { e.SetHL(p) },
	Get:     func(e *Emulator) uint16 { return e.GetHL() },
	LiveIn:  []insn.Datum{H, L},
	LiveOut: []insn.Datum{H, L},
}
