package analysis

import (
	"testing"

	"github.com/strop-go/strop/insn"
)

// testInsn is a tiny, fully scripted instruction used to exercise the
// analyzers without pulling in a real architecture.
type testInsn struct {
	name       string
	reads      map[insn.Datum]bool
	writes     map[insn.Datum]bool
	isReturn   bool
	isImpure   bool
	branch     int
	hasBranch  bool
	pairHi     insn.Datum
	pairLo     insn.Datum
	isPairLoad bool
	length     int
}

func (t *testInsn) Encode() []byte              { return make([]byte, t.length) }
func (t *testInsn) Length() int                  { return t.length }
func (t *testInsn) String() string               { return t.name }
func (t *testInsn) Reads(d insn.Datum) bool      { return t.reads[d] }
func (t *testInsn) Writes(d insn.Datum) bool     { return t.writes[d] }
func (t *testInsn) IsFlowControl() bool          { return t.hasBranch || t.isReturn }
func (t *testInsn) IsImpure() bool               { return t.isImpure }
func (t *testInsn) IsReturn() bool               { return t.isReturn }
func (t *testInsn) BranchOffset() (int, bool)    { return t.branch, t.hasBranch }
func (t *testInsn) Clone() insn.Instruction      { c := *t; return &c }
func (t *testInsn) Next() error                  { return insn.ErrEnd }
func (t *testInsn) NextOpcode() error            { return insn.ErrEnd }
func (t *testInsn) PairLoad() (insn.Datum, insn.Datum, bool) {
	return t.pairHi, t.pairLo, t.isPairLoad
}

func newSeq(items ...*testInsn) *insn.Sequence {
	seq := insn.NewSequence(func() insn.Instruction { return &testInsn{length: 1} })
	for range items {
		seq.Next() // grow by one position
	}
	for i, it := range items {
		seq.Set(i, it)
	}
	return seq
}

func TestMakeReturn(t *testing.T) {
	ret := &testInsn{name: "ret", isReturn: true, length: 1}
	nonRet := &testInsn{name: "nop", length: 1}

	if fx := MakeReturn()(newSeq(ret)); fx != nil {
		t.Fatalf("expected no fixup for a sequence ending in return, got %+v", fx)
	}
	if fx := MakeReturn()(newSeq(nonRet)); fx == nil {
		t.Fatalf("expected a fixup for a sequence not ending in return")
	} else if fx.Offset != 0 {
		t.Fatalf("expected fixup at offset 0, got %d", fx.Offset)
	}
}

func TestBranchesInRange(t *testing.T) {
	// A 2-byte branch at offset 0 with displacement 0 targets byte 2,
	// the start of the 1-byte return that follows it, so it is in range.
	br := &testInsn{name: "jr", hasBranch: true, branch: 0, length: 2}
	ret := &testInsn{name: "ret", isReturn: true, length: 1}
	if fx := BranchesInRange()(newSeq(br, ret)); fx != nil {
		t.Fatalf("expected branch landing on the return to be in range, got %+v", fx)
	}

	badBr := &testInsn{name: "jr", hasBranch: true, branch: 50, length: 2}
	if fx := BranchesInRange()(newSeq(badBr, ret)); fx == nil {
		t.Fatalf("expected an out-of-range branch to produce a fixup")
	}
}

func TestDataflowDeadArgument(t *testing.T) {
	// Writes "A" without reading it first: the input argument is
	// discarded.
	deadWrite := &testInsn{
		name:   "ld a,5",
		writes: map[insn.Datum]bool{"A": true},
		length: 1,
	}
	fx := Dataflow([]insn.Datum{"A"}, nil)(newSeq(deadWrite))
	if fx == nil {
		t.Fatalf("expected a fixup for a dead argument")
	}
}

func TestDataflowLiveOutNeverWritten(t *testing.T) {
	nop := &testInsn{name: "nop", length: 1}
	fx := Dataflow(nil, []insn.Datum{"A"})(newSeq(nop))
	if fx == nil {
		t.Fatalf("expected a fixup when a live-out register is never written")
	}
}

func TestDataflowPasses(t *testing.T) {
	readsA := &testInsn{name: "inc a", reads: map[insn.Datum]bool{"A": true}, writes: map[insn.Datum]bool{"A": true}, length: 1}
	fx := Dataflow([]insn.Datum{"A"}, []insn.Datum{"A"})(newSeq(readsA))
	if fx != nil {
		t.Fatalf("expected no fixup, got %+v", fx)
	}
}

func TestDeadRegisterWrites(t *testing.T) {
	deadB := &testInsn{name: "ld b,0x40", writes: map[insn.Datum]bool{"B": true}, length: 2}
	ret := &testInsn{name: "ret", isReturn: true, length: 1}
	fx := DeadRegisterWrites([]insn.Datum{"B"}, []insn.Datum{"A"})(newSeq(deadB, ret))
	if fx == nil {
		t.Fatalf("expected a fixup for a register written but never read")
	}
	if fx.Offset != 0 {
		t.Fatalf("expected fixup at offset 0, got %d", fx.Offset)
	}
}

func TestRegisterPairPruning(t *testing.T) {
	loadBoth := &testInsn{name: "ld hl,n", pairHi: "H", pairLo: "L", isPairLoad: true, length: 3}
	usesHi := &testInsn{name: "ld a,h", reads: map[insn.Datum]bool{"H": true}, length: 1}
	usesLo := &testInsn{name: "ld a,l", reads: map[insn.Datum]bool{"L": true}, length: 1}

	if fx := RegisterPairPruning()(newSeq(loadBoth, usesHi, usesLo)); fx != nil {
		t.Fatalf("expected no fixup when both halves are read, got %+v", fx)
	}
	if fx := RegisterPairPruning()(newSeq(loadBoth, usesHi)); fx == nil {
		t.Fatalf("expected a fixup when only one half is read")
	}
}

func TestPipelineShortCircuits(t *testing.T) {
	nonRet := &testInsn{name: "nop", length: 1}
	calls := 0
	countingAnalyzer := func(*insn.Sequence) *Fixup {
		calls++
		return nil
	}
	p := Pipeline{MakeReturn(), countingAnalyzer}
	p.Run(newSeq(nonRet))
	if calls != 0 {
		t.Fatalf("expected the pipeline to short-circuit before the second analyzer, got %d calls", calls)
	}
}
