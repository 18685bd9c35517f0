// Package callconv implements per-ABI calling-convention bindings
// (spec.md 4.7): how a (Params, RetVal) pair is marshalled into and out
// of an architecture's registers around a call_subroutine.
package callconv

import (
	"github.com/strop-go/strop/emu"
	"github.com/strop-go/strop/insn"
)

// Binding composes an ABI's parameter/return marshalling with the
// shared call_subroutine/single-step loop, around one architecture's
// Adapter. E, P and R mirror the generic parameterization the
// underlying design already uses for SdccCall1<Params, ReturnValue>
// and its siblings. Put and Get are plain functions rather than
// methods on P/R themselves: a method-based interface constraint here
// would force R's zero value (needed to receive the result) to be a
// pointer type, which is never safely usable before Get has run. A
// function field sidesteps that without losing per-ABI type safety.
type Binding[E emu.Adapter, P any, R any] struct {
	New func() E
	Put func(e E, p P)
	Get func(e E) R

	// LiveIn and LiveOut name the registers the dataflow analyzer
	// should treat as this ABI's argument and result registers.
	LiveIn  []insn.Datum
	LiveOut []insn.Datum
}

// Call composes new-emulator -> put -> call_subroutine -> get, per
// spec.md 4.7. Load, single-step and termination detection are the
// architecture's Adapter and the shared emu.RunLoop; this method only
// adds the ABI-specific marshalling either side of that.
func (b Binding[E, P, R]) Call(seq *insn.Sequence, params P) (ret R, err error) {
	e := b.New()
	e.Reset()
	b.Put(e, params)
	code := seq.Encode()
	start := e.Load(code)
	if err := emu.RunLoop(e, start, uint32(len(code))); err != nil {
		return ret, err
	}
	return b.Get(e), nil
}
