package m68k

import (
	"github.com/strop-go/strop/callconv"
	"github.com/strop-go/strop/insn"
)

// Regparm32 is the calling-convention binding for `fn(u32) -> u32`
// under a regparm-style 68000 ABI: the first 32-bit argument arrives in
// D0 and the result is returned in D0 (spec.md 4.7's worked example,
// applied to this architecture's own register file; seed test 4 uses
// this binding with the identity function).
var Regparm32 = callconv.Binding[*Emulator, uint32, uint32]{
	New:     NewEmulator,
	Put:     func(e *Emulator, p uint32) { e.SetD32(D0, p) },
	Get:     func(e *Emulator) uint32 { return e.GetD32(D0) },
	LiveIn:  []insn.Datum{D0},
	LiveOut: []insn.Datum{D0},
}
