package arm

import (
	"github.com/strop-go/strop/callconv"
	"github.com/strop-go/strop/insn"
)

// Aapcs32U32 is the calling-convention binding for `fn(u32) -> u32`
// under AAPCS32: the first argument and the result both live in R0
// (original_source/src/armv4t/aapcs32.rs's callee_saved table marks
// R0-R3 and R12 as caller-saved/argument registers; this system's
// seed tests only ever need the first).
var Aapcs32U32 = callconv.Binding[*Emulator, uint32, uint32]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint32) { e.SetReg(R0, p) },
	Get:     func(e *Emulator) uint32 { return e.GetReg(R0) },
	LiveIn:  []insn.Datum{R0},
	LiveOut: []insn.Datum{R0},
}
