package sm83

import (
	"testing"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/arch/z80"
	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/search"
)

// TestCompatibleAcceptsEveryZ80InsnInThisTable confirms Compatible is
// permissive by construction: every opcode this package's (shared)
// table can produce is SM83-legal, so the filter never actually
// forbids anything in practice.
func TestCompatibleAcceptsEveryZ80InsnInThisTable(t *testing.T) {
	i := First().(*z80.Insn)
	for {
		if !Compatible(i) {
			t.Fatalf("expected %s to be SM83-compatible", i)
		}
		if NotCompatible(i) {
			t.Fatalf("NotCompatible must never match a z80.Insn from this table, matched %s", i)
		}
		if i.NextOpcode() != nil {
			break
		}
	}
}

// TestIdentityU8FindsBareRet mirrors arch/z80's seed test 1: SM83
// shares sdcccall(1)'s register assignment, so identity's shortest
// program is still a bare RET.
func TestIdentityU8FindsBareRet(t *testing.T) {
	seq := insn.NewSequence(First)
	pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Forbid(NotCompatible, "sm83 compatibility")}
	bf := search.NewBruteForce(seq, pipeline)

	cand, ok := bf.Next()
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if cand.Len() != 1 {
		t.Fatalf("expected length 1, got %d: %s", cand.Len(), cand)
	}

	for _, v := range []uint8{0, 1, 0x7F, 0xFF} {
		got, err := SdccCall1U8.Call(cand, v)
		if err != nil || got != v {
			t.Fatalf("expected identity on %d, got %d, err %v", v, got, err)
		}
	}
}
