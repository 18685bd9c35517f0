package arm

import (
	"testing"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

// TestIdentityU32FindsBareBxLr: R0 carries both the argument and the
// result under Aapcs32U32, so a bare `BX LR` is already correct, the
// same shape as every other architecture's identity seed test.
func TestIdentityU32FindsBareBxLr(t *testing.T) {
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
	if enc := cand.Encode(); len(enc) != 2 || enc[0] != 0x70 || enc[1] != 0x47 {
		t.Fatalf("expected BX LR (0x4770 little-endian), got %x", enc)
	}

	for _, v := range []uint32{0, 1, 0x7FFFFFFF, 0xFFFFFFFF} {
		got, err := Aapcs32U32.Call(cand, v)
		if err != nil || got != v {
			t.Fatalf("expected identity on %#x, got %#x, err %v", v, got, err)
		}
	}
}

// TestMovImmLoadsConstant pins down MOVS R0,#42; BX LR directly.
func TestMovImmLoadsConstant(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{word: 0x2000 | 42}) // MOVS R0,#42
	seq.Insert(1, &Insn{word: 0x4770})      // BX LR

	for _, v := range []uint32{0, 1, 0xFFFFFFFF} {
		got, err := Aapcs32U32.Call(seq, v)
		if err != nil || got != 42 {
			t.Fatalf("MOVS R0,#42: got %#x, err %v", got, err)
		}
	}
}

// TestAddReg3SumsTwoRegisters pins down ADDS R0,R0,R1; BX LR: loading
// R1 with a constant via MOVS, then adding it into R0 (the argument),
// computing arg+constant.
func TestAddReg3SumsTwoRegisters(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{word: 0x2100 | 7})                      // MOVS R1,#7
	seq.Insert(1, &Insn{word: 0x1800 | (1 << 6) | (0 << 3) | 0}) // ADDS R0,R0,R1
	seq.Insert(2, &Insn{word: 0x4770})                           // BX LR

	got, err := Aapcs32U32.Call(seq, 10)
	if err != nil || got != 17 {
		t.Fatalf("expected 10+7=17, got %#x, err %v", got, err)
	}
}

func TestPeepholeFlagsDeadRegisterLoad(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{word: 0x2100 | 9})  // MOVS R1,#9 (dead: R1 is scratch, never read)
	seq.Insert(1, &Insn{word: 0x2000 | 42}) // MOVS R0,#42
	seq.Insert(2, &Insn{word: 0x4770})      // BX LR

	universe := []insn.Datum{R0, R1, R2, R3, R4, R5, R6, R7}
	deadWrites := analysis.DeadRegisterWrites(universe, []insn.Datum{R0})

	fx := deadWrites(seq)
	if fx == nil {
		t.Fatalf("expected the analyzer to flag the dead write to R1")
	}
	if fx.Offset != 0 {
		t.Fatalf("expected the fixup at offset 0, got %d", fx.Offset)
	}
}
