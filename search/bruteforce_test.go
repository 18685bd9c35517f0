package search

import (
	"testing"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/insn"
)

// twoOpInsn is a minimal instruction family with two opcodes, 0 (a
// no-op) and 1 (a return), each one byte long. It is enough to exercise
// the bruteforce engine's fixup-driven skip without a real
// architecture.
type twoOpInsn struct {
	op byte
}

func twoOpFirst() insn.Instruction { return &twoOpInsn{op: 0} }

func (t *twoOpInsn) Encode() []byte           { return []byte{t.op} }
func (t *twoOpInsn) Length() int              { return 1 }
func (t *twoOpInsn) String() string           { return "op" }
func (t *twoOpInsn) Reads(insn.Datum) bool    { return false }
func (t *twoOpInsn) Writes(insn.Datum) bool   { return false }
func (t *twoOpInsn) IsFlowControl() bool      { return false }
func (t *twoOpInsn) IsImpure() bool           { return false }
func (t *twoOpInsn) IsReturn() bool           { return t.op == 1 }
func (t *twoOpInsn) BranchOffset() (int, bool) { return 0, false }
func (t *twoOpInsn) Clone() insn.Instruction  { c := *t; return &c }

func (t *twoOpInsn) Next() error {
	if t.op >= 1 {
		return insn.ErrEnd
	}
	t.op++
	return nil
}
func (t *twoOpInsn) NextOpcode() error { return t.Next() }

func TestBruteForceFindsShortestReturn(t *testing.T) {
	seq := insn.NewSequence(twoOpFirst)
	pipeline := analysis.Pipeline{analysis.MakeReturn()}
	bf := NewBruteForce(seq, pipeline)

	cand, ok := bf.Next()
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if cand.Len() != 1 {
		t.Fatalf("expected the shortest candidate to have length 1, got %d", cand.Len())
	}
	if !cand.At(0).IsReturn() {
		t.Fatalf("expected the single instruction to be the return opcode")
	}
}

func TestBruteForceRespectsMaxLength(t *testing.T) {
	// An analyzer that always demands a fixup at the last offset forces the
	// sequence to grow without bound; MaxLength must still cut it off.
	alwaysFail := func(seq *insn.Sequence) *analysis.Fixup {
		return &analysis.Fixup{Offset: seq.LastOffset(), Advance: analysis.NextOpcode, Reason: "never satisfied"}
	}
	seq := insn.NewSequence(twoOpFirst)
	bf := NewBruteForce(seq, analysis.Pipeline{alwaysFail})
	bf.MaxLength = 3

	for i := 0; i < 1000; i++ {
		if _, ok := bf.Next(); !ok {
			return
		}
	}
	t.Fatalf("expected the search to halt once the length cap was exceeded")
}
