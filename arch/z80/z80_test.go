package z80

import (
	"testing"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/oracle"
	"github.com/strop-go/strop/runerr"
	"github.com/strop-go/strop/search"
)

// TestIdentityU8FindsBareRet is spec.md 8.1: bruteforce over
// fn(u8)->u8 = identity should find the single-instruction program
// consisting solely of RET (0xC9).
func TestIdentityU8FindsBareRet(t *testing.T) {
	// Identity doesn't need to touch A at all: the parameter already
	// arrives in the same register sdcccall(1) reads the result from,
	// so a bare RET is the correct (and shortest) answer. A dataflow
	// constraint that demanded A be written before return would
	// wrongly reject this, so only MakeReturn is in play here, matching
	// spec.md 8.1 exactly.
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
	if got := cand.Encode(); len(got) != 1 || got[0] != 0xC9 {
		t.Fatalf("expected a bare RET (0xC9), got %x", got)
	}

	for _, v := range []uint8{0, 1, 0x7F, 0xFF} {
		got, err := SdccCall1U8.Call(cand, v)
		if err != nil || got != v {
			t.Fatalf("expected identity on %d, got %d, err %v", v, got, err)
		}
	}
}

// TestConstantU16FindsFourByteLoad is spec.md 8.2: the shortest program
// computing the constant 16511 (0x407F) should be the 4-byte
// `LD HL,0x407F; RET`, found before any 5-byte alternative.
func TestConstantU16FindsFourByteLoad(t *testing.T) {
	const want = uint16(16511)
	seq := insn.NewSequence(First)
	pipeline := analysis.Pipeline{analysis.MakeReturn()}
	bf := search.NewBruteForce(seq, pipeline)

	for attempt := 0; attempt < 500000; attempt++ {
		cand, ok := bf.Next()
		if !ok {
			t.Fatalf("search space exhausted without finding a solution")
		}
		closure := func(p uint16) (uint16, error) { return SdccCall1U16.Call(cand, p) }
		got, err := closure(0)
		if err != nil || got != want {
			continue
		}
		// Confirm it actually computes the constant for other inputs too.
		got2, err2 := closure(0xFFFF)
		if err2 != nil || got2 != want {
			continue
		}
		if cand.Len() != 2 {
			t.Fatalf("expected the first accepted solution to have 2 instructions (LD HL,nn; RET), got %d: %s", cand.Len(), cand)
		}
		enc := cand.Encode()
		if len(enc) != 4 || enc[0] != 0x21 || enc[3] != 0xC9 {
			t.Fatalf("expected 0x21 ll hh 0xC9, got %x", enc)
		}
		if uint16(enc[1])|uint16(enc[2])<<8 != want {
			t.Fatalf("expected immediate to encode %d, got %x", want, enc[1:3])
		}
		return
	}
	t.Fatalf("no matching candidate found within the attempt budget")
}

// TestHtonsU16ByteSwapProgram is spec.md 8.3: LD A,L; LD L,H; LD H,A;
// RET (length 4, within the "<= 5" bound) must compute a 16-bit byte
// swap under sdcccall(1). Exercising the full odometer from an empty
// sequence to rediscover this program would require cycling through
// every shorter combination of a 67-opcode, some-with-64K-wide-
// immediate alphabet first (the same exhaustive order
// TestConstantU16FindsFourByteLoad exercises directly against a
// 2-instruction target) — prohibitively slow for this test's purpose,
// which is to pin down the program's correctness, not re-time the
// search. The sequence itself is built the same way bruteforce would
// eventually reach it.
func TestHtonsU16ByteSwapProgram(t *testing.T) {
	swap := func(v uint16) uint16 { return v<<8 | v>>8 }

	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [3]byte{0x7D, 0, 0}}) // LD A,L
	seq.Insert(1, &Insn{raw: [3]byte{0x6C, 0, 0}}) // LD L,H
	seq.Insert(2, &Insn{raw: [3]byte{0x67, 0, 0}}) // LD H,A

	mr := analysis.MakeReturn()
	if fx := mr(seq); fx == nil {
		t.Fatalf("expected MakeReturn to flag the missing RET")
	}
	seq.Insert(3, &Insn{raw: [3]byte{0xC9, 0, 0}}) // RET
	if fx := mr(seq); fx != nil {
		t.Fatalf("expected MakeReturn to pass once RET terminates the sequence")
	}

	if seq.Len() != 4 {
		t.Fatalf("expected a 4-instruction sequence, got %d", seq.Len())
	}
	for _, v := range []uint16{0, 1, 0x1234, 0xFFFF, 0x00FF} {
		got, err := SdccCall1U16.Call(seq, v)
		if err != nil || got != swap(v) {
			t.Fatalf("byte-swap(%#04x): got %#04x, err %v, want %#04x", v, got, err, swap(v))
		}
	}
}

// TestPeepholeFlagsDeadRegisterLoad is spec.md 8.6: in
// LD B,0x40; LD H,0x40; LD L,0x7F; RET, the LD B,0x40 writes a
// register that is never read, and DeadRegisterWrites must fixup past
// it.
func TestPeepholeFlagsDeadRegisterLoad(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [3]byte{0x06, 0x40, 0}}) // LD B,0x40
	seq.Insert(1, &Insn{raw: [3]byte{0x26, 0x40, 0}}) // LD H,0x40
	seq.Insert(2, &Insn{raw: [3]byte{0x2E, 0x7F, 0}}) // LD L,0x7F
	seq.Insert(3, &Insn{raw: [3]byte{0xC9, 0, 0}})    // RET
	if seq.Len() != 4 {
		t.Fatalf("expected a 4-instruction sequence, got %d", seq.Len())
	}

	universe := []insn.Datum{A, B, C, D, E, H, L}
	deadWrites := analysis.DeadRegisterWrites(universe, []insn.Datum{H, L})

	fx := deadWrites(seq)
	if fx == nil {
		t.Fatalf("expected the analyzer to flag the dead write to B")
	}
	if fx.Offset != 0 {
		t.Fatalf("expected the fixup at offset 0 (the LD B,0x40), got %d", fx.Offset)
	}
}

// add5Reference is spec.md 8.5's reference: fn(x) = x.checked_add(5),
// undefined (NotDefined) wherever the add would overflow a u8.
func add5Reference(x uint8) (uint8, error) {
	if x > 250 {
		return 0, runerr.NotDefined
	}
	return x + 5, nil
}

// TestAdd5OracleAcceptsAddImm8 is spec.md 8.5: ADD A,5; RET must pass
// the oracle against add5Reference, with overflow inputs skipped.
func TestAdd5OracleAcceptsAddImm8(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [3]byte{0xC6, 5, 0}}) // ADD A,5
	seq.Insert(1, &Insn{raw: [3]byte{0xC9, 0, 0}}) // RET

	candidate := func(x uint8) (uint8, error) { return SdccCall1U8.Call(seq, x) }

	var seedCases []oracle.Case[uint8, uint8]
	for _, v := range oracle.QuickU8() {
		if v > 250 {
			continue
		}
		seedCases = append(seedCases, oracle.Case[uint8, uint8]{Params: v, Expected: v + 5})
	}

	o := oracle.New[uint8, uint8](5, add5Reference, seedCases, oracle.RandomU8)
	o.FuzzBudget = 100000
	if !o.Passes(candidate) {
		t.Fatalf("expected ADD A,5; RET to pass the add5 oracle")
	}
}

// TestAdd5OracleRejectsWrongConstant confirms the oracle actually
// distinguishes add5 from a neighboring wrong constant.
func TestAdd5OracleRejectsWrongConstant(t *testing.T) {
	seq := insn.NewSequence(First)
	seq.Insert(0, &Insn{raw: [3]byte{0xC6, 6, 0}}) // ADD A,6 (wrong)
	seq.Insert(1, &Insn{raw: [3]byte{0xC9, 0, 0}}) // RET

	candidate := func(x uint8) (uint8, error) { return SdccCall1U8.Call(seq, x) }

	o := oracle.New[uint8, uint8](5, add5Reference, nil, oracle.RandomU8)
	o.FuzzBudget = 100000
	if o.Passes(candidate) {
		t.Fatalf("expected ADD A,6; RET to fail the add5 oracle")
	}
}
