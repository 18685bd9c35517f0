package mos6502

import (
	"testing"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

// TestIdentityU8FindsBareRts: the argument and result share A under
// LlvmMosU8, so a bare RTS (0x60) is already correct and shortest, the
// same reasoning as arch/z80 and arch/m68k's identity tests.
func TestIdentityU8FindsBareRts(t *testing.T) {
	seq := insn.NewSequence(First)
	pipeline := analysis.Pipeline{analysis.MakeReturn()}
	bf := search.NewBruteForce(seq, pipeline)

	cand, ok := bf.Next()
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if cand.Len() != 1 {
		t.Fatalf("expected length 1, got %d: %s", cand.Len(), cand)
	}
	if enc := cand.Encode(); len(enc) != 1 || enc[0] != 0x60 {
		t.Fatalf("expected a bare RTS (0x60), got %x", enc)
	}

	for _, v := range []uint8{0, 1, 0x7F, 0xFF} {
		got, err := LlvmMosU8.Call(cand, v)
		if err != nil || got != v {
			t.Fatalf("expected identity on %d, got %d, err %v", v, got, err)
		}
	}
}

// TestConstantU8LoadsImmediate pins down LDA #42; RTS directly.
func TestConstantU8LoadsImmediate(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [2]byte{0xA9, 42}}) // LDA #42
	seq.Insert(1, &Insn{raw: [2]byte{0x60, 0}})  // RTS

	for _, v := range []uint8{0, 1, 0xFF} {
		got, err := LlvmMosU8.Call(seq, v)
		if err != nil || got != 42 {
			t.Fatalf("LDA #42: got %d, err %v", got, err)
		}
	}
}

// TestAdcImmAddsConstant pins down ADC #5; RTS as a program computing
// arg+5 on an input that does not overflow. It exercises only the
// instruction itself; the oracle's NotDefined-on-overflow handling is
// covered by the oracle package's own tests.
func TestAdcImmAddsConstant(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [2]byte{0x69, 5}}) // ADC #5
	seq.Insert(1, &Insn{raw: [2]byte{0x60, 0}}) // RTS

	got, err := LlvmMosU8.Call(seq, 10)
	if err != nil || got != 15 {
		t.Fatalf("expected 10+5=15, got %d, err %v", got, err)
	}
}

func TestPeepholeFlagsDeadRegisterLoad(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [2]byte{0xA2, 9}})  // LDX #9 (dead)
	seq.Insert(1, &Insn{raw: [2]byte{0xA2, 5}})  // LDX #5
	seq.Insert(2, &Insn{raw: [2]byte{0x8A, 0}})  // TXA
	seq.Insert(3, &Insn{raw: [2]byte{0x60, 0}})  // RTS

	universe := []insn.Datum{A, X, Y}
	deadWrites := analysis.DeadRegisterWrites(universe, []insn.Datum{A})

	fx := deadWrites(seq)
	if fx == nil {
		t.Fatalf("expected the analyzer to flag the dead write to X")
	}
	if fx.Offset != 0 {
		t.Fatalf("expected the fixup at offset 0, got %d", fx.Offset)
	}
}
