package mips

import (
	"github.com/strop-go/strop/callconv"
	"github.com/strop-go/strop/insn"
)

// O32U32 is the calling-convention binding for `fn(u32) -> u32` under
// O32: the first argument arrives in $a0, the result is returned in
// $v0 (original_source/src/mips/o32.rs; spec.md 4.7's worked example
// applied to MIPS's own register split between argument and result
// registers).
var O32U32 = callconv.Binding[*Emulator, uint32, uint32]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint32) { e.SetReg(A0, p) },
	Get:     func(e *Emulator) uint32 { return e.GetReg(V0) },
	LiveIn:  []insn.Datum{A0},
	LiveOut: []insn.Datum{V0},
}
