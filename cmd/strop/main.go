// Command strop is the search driver: pick a target function on a
// target architecture/ABI, run either the bruteforce or the
// stochastic searcher against it, and report the first candidate the
// equivalence oracle accepts.
//
// It plays the same role cmd/run68/main.go plays for the teacher's
// standalone emulator, generalized from "load and execute one binary"
// to "search for a program and then execute it" (original_source's
// porcelain.rs ties the same pieces together as a CLI, under the name
// "strop search").
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/grimdork/climate"

	"github.com/strop-go/strop/analysis"
	"github.com/strop-go/strop/arch/arm"
	"github.com/strop-go/strop/arch/m68k"
	"github.com/strop-go/strop/arch/mips"
	"github.com/strop-go/strop/arch/mos6502"
	"github.com/strop-go/strop/arch/sm83"
	"github.com/strop-go/strop/arch/z80"
	"github.com/strop-go/strop/insn"
	"github.com/strop-go/strop/oracle"
	"github.com/strop-go/strop/runerr"
	"github.com/strop-go/strop/search"
	"github.com/strop-go/strop/trace"
)

// args is climate's struct-tag argument surface: the teacher's own
// cmd/* use stdlib flag directly, but climate was already a declared
// dependency with no call site in the teacher (a richer target/ABI/
// search flag set than cmd/run68 ever needed is exactly what it's
// for).
type args struct {
	Target   string `short:"t" long:"target" help:"target to search for; -list shows every available one" default:"z80/identity8"`
	List     bool   `short:"l" long:"list" help:"list available targets and exit"`
	Mode     string `short:"m" long:"mode" help:"search strategy: bruteforce or stochastic" default:"bruteforce"`
	Attempts int    `short:"a" long:"attempts" help:"maximum candidates to try, 0 for unbounded" default:"200000"`
	Seed     uint64 `short:"s" long:"seed" help:"PRNG seed for stochastic search and oracle fuzzing" default:"1"`
	Verbose  bool   `short:"v" long:"verbose" help:"log every candidate considered"`

	KeepGoing bool `short:"K" long:"keep-going" help:"keep going after the first solution: find more equivalent programs"`
	Jobs      int  `short:"j" long:"jobs" help:"worker goroutines for -K; each searches a disjoint range and shares nothing" default:"1"`
}

// tripletConstructor is the "architecture+ABI constructor" spec.md 7
// keeps out of the core library: enough of one instruction family to
// run a bruteforce or stochastic search, with no reference function
// bound yet. cmd/strop is the only package that ties a triplet to a
// target function, via buildTargets below.
type tripletConstructor struct {
	factory insn.Factory
	random  search.RandomInstruction
}

// tripletRegistry maps a target triplet (spec.md 4.7's CLI selection
// string, e.g. "mips-unknown-linux-gnu") to the architecture+ABI pair
// that triplet names. It is the one place in this module a triplet
// string is ever parsed; arch/callconv stay triplet-agnostic.
var tripletRegistry = map[string]tripletConstructor{
	"z80-unknown-sdcc":             {z80.First, z80.Random},
	"sm83-gameboy-sdcc":            {sm83.First, sm83.Random},
	"mos6502-unknown-llvm-mos":     {mos6502.First, mos6502.Random},
	"m68k-unknown-elf":             {m68k.First, m68k.Random},
	"armv4t-unknown-linux-gnueabi": {arm.First, arm.Random},
	"mips-unknown-linux-gnu":       {mips.First, mips.Random},
}

// target bundles everything one named search needs: the instruction
// family, the static-analysis pipeline, a judge factory wired to a
// concrete oracle.Oracle template, and (for stochastic mode) a cost
// function and random-instruction generator.
//
// judgeFactory, not a single judge, is what target exposes: calling it
// clones the underlying Oracle (see oracle.Oracle.Clone), so each call
// gets its own test suite and PRNG rather than sharing one across
// goroutines — the -K/-jobs worker pool calls it once per worker.
type target struct {
	name         string
	triplet      string
	describe     string
	factory      insn.Factory
	pipeline     analysis.Pipeline
	judgeFactory func(seed uint64) trace.Judge
	cost         search.Cost
	random       search.RandomInstruction
}

func main() {
	log.SetFlags(0)

	var a args
	if err := climate.Parse(&a); err != nil {
		log.Fatalf("%v", err)
	}

	targets := buildTargets(a.Seed)

	if a.List {
		names := make([]string, 0, len(targets))
		for name := range targets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			t := targets[name]
			fmt.Printf("%-16s %-30s %s\n", name, t.triplet, t.describe)
		}
		return
	}

	t, ok := targets[a.Target]
	if !ok {
		log.Fatalf("unknown target %q; run with -list to see what's available", a.Target)
	}

	l := trace.NewLogger(os.Stdout, a.Verbose)

	if a.KeepGoing && a.Jobs > 1 {
		runSession(t, a, l)
		return
	}

	var src trace.Source
	switch a.Mode {
	case "bruteforce":
		src = search.NewBruteForce(insn.NewSequence(t.factory), t.pipeline)
	case "stochastic":
		src = &trace.StochasticSource{
			Searcher: search.NewStochastic(a.Seed, t.factory, t.random, t.cost),
			Budget:   a.Attempts,
		}
	default:
		log.Fatalf("unknown mode %q: want bruteforce or stochastic", a.Mode)
	}

	report := trace.Run(src, t.judgeFactory(a.Seed), a.Attempts, l)
	if !report.Found {
		log.Fatalf("no candidate found for %s after %d attempts: %s", t.name, report.Attempts, report.Reason)
	}

	log.Printf("found %s in %d attempts (%d bytes):", t.name, report.Attempts, len(report.Sequence.Encode()))
	fmt.Print(trace.Disassembly(report.Sequence))
}

// runSession drives a -K/-jobs search: every worker goroutine owns its
// own search.BruteForce and its own oracle.Oracle clone (t.judgeFactory
// is called once per worker, with a distinct seed, never shared across
// goroutines) and reports back over a channel; runSession itself only
// reads the finished results, never touching search state a worker owns.
func runSession(t *target, a args, l *trace.Logger) {
	perWorker := a.Attempts / a.Jobs
	stride := perWorker + 1
	if perWorker == 0 {
		stride = 100000 // a.Attempts==0 means unbounded; still space workers apart
	}
	judgeFactory := func(worker int) func(*insn.Sequence) bool {
		return t.judgeFactory(a.Seed + uint64(worker) + 1)
	}
	sess := search.NewSession(t.factory, t.pipeline, judgeFactory, a.Jobs, perWorker, stride)

	results := sess.Run()
	found := 0
	for _, r := range results {
		if !r.Found {
			l.Tracef("worker %d: no candidate after %d attempts", r.Worker, r.Attempts)
			continue
		}
		found++
		log.Printf("worker %d found %s in %d attempts (%d bytes):", r.Worker, t.name, r.Attempts, len(r.Sequence.Encode()))
		fmt.Print(trace.Disassembly(r.Sequence))
	}
	if found == 0 {
		log.Fatalf("no worker found a candidate for %s", t.name)
	}
}

// hamming8 and hamming32 score a candidate's disagreement with the
// reference on a single sample, widened through search.Hamming32 so
// every target shares one distance function regardless of word size.
func hamming8(got, want uint8) int   { return search.Hamming32(uint32(got), uint32(want)) }
func hamming16(got, want uint16) int { return search.Hamming32(uint32(got), uint32(want)) }
func hamming32(got, want uint32) int { return search.Hamming32(got, want) }

// hamming8s, hamming16s and hamming32s are the signed targets' distance
// functions: the bit pattern is all that matters for Hamming distance,
// so they widen through search.Hamming64 rather than re-deriving
// Hamming32's logic for a different width.
func hamming8s(got, want int8) int   { return search.Hamming64(uint64(uint8(got)), uint64(uint8(want))) }
func hamming16s(got, want int16) int { return search.Hamming64(uint64(uint16(got)), uint64(uint16(want))) }
func hamming32s(got, want int32) int { return search.Hamming64(uint64(uint32(got)), uint64(uint32(want))) }

// crashPenalty is charged, per sample, when a candidate fails to
// terminate or otherwise errors where the reference didn't: comfortably
// worse than disagreeing in every bit of a 32-bit word, so the
// stochastic searcher never prefers a crashing candidate to a merely
// wrong one.
const crashPenalty = 64

func costU8(ref func(uint8) (uint8, error), call func(*insn.Sequence, uint8) (uint8, error), samples []uint8) search.Cost {
	return func(seq *insn.Sequence) float64 {
		total := 0
		for _, v := range samples {
			want, werr := ref(v)
			if werr != nil {
				continue
			}
			got, gerr := call(seq, v)
			if gerr != nil {
				total += crashPenalty
				continue
			}
			total += hamming8(got, want)
		}
		return float64(total) + float64(seq.Len())
	}
}

func costU16(ref func(uint16) (uint16, error), call func(*insn.Sequence, uint16) (uint16, error), samples []uint16) search.Cost {
	return func(seq *insn.Sequence) float64 {
		total := 0
		for _, v := range samples {
			want, werr := ref(v)
			if werr != nil {
				continue
			}
			got, gerr := call(seq, v)
			if gerr != nil {
				total += crashPenalty
				continue
			}
			total += hamming16(got, want)
		}
		return float64(total) + float64(seq.Len())
	}
}

func costU32(ref func(uint32) (uint32, error), call func(*insn.Sequence, uint32) (uint32, error), samples []uint32) search.Cost {
	return func(seq *insn.Sequence) float64 {
		total := 0
		for _, v := range samples {
			want, werr := ref(v)
			if werr != nil {
				continue
			}
			got, gerr := call(seq, v)
			if gerr != nil {
				total += crashPenalty
				continue
			}
			total += hamming32(got, want)
		}
		return float64(total) + float64(seq.Len())
	}
}

func costI8(ref func(int8) (int8, error), call func(*insn.Sequence, int8) (int8, error), samples []int8) search.Cost {
	return func(seq *insn.Sequence) float64 {
		total := 0
		for _, v := range samples {
			want, werr := ref(v)
			if werr != nil {
				continue
			}
			got, gerr := call(seq, v)
			if gerr != nil {
				total += crashPenalty
				continue
			}
			total += hamming8s(got, want)
		}
		return float64(total) + float64(seq.Len())
	}
}

func costI16(ref func(int16) (int16, error), call func(*insn.Sequence, int16) (int16, error), samples []int16) search.Cost {
	return func(seq *insn.Sequence) float64 {
		total := 0
		for _, v := range samples {
			want, werr := ref(v)
			if werr != nil {
				continue
			}
			got, gerr := call(seq, v)
			if gerr != nil {
				total += crashPenalty
				continue
			}
			total += hamming16s(got, want)
		}
		return float64(total) + float64(seq.Len())
	}
}

func costI32(ref func(int32) (int32, error), call func(*insn.Sequence, int32) (int32, error), samples []int32) search.Cost {
	return func(seq *insn.Sequence) float64 {
		total := 0
		for _, v := range samples {
			want, werr := ref(v)
			if werr != nil {
				continue
			}
			got, gerr := call(seq, v)
			if gerr != nil {
				total += crashPenalty
				continue
			}
			total += hamming32s(got, want)
		}
		return float64(total) + float64(seq.Len())
	}
}

func identityReferenceU8(x uint8) (uint8, error)    { return x, nil }
func identityReferenceU16(x uint16) (uint16, error) { return x, nil }
func identityReferenceU32(x uint32) (uint32, error) { return x, nil }

func add5Reference(x uint8) (uint8, error) {
	if x > 250 {
		return 0, runerr.NotDefined
	}
	return x + 5, nil
}

func htonsReference(v uint16) (uint16, error) { return v<<8 | v>>8, nil }

// negateReference8/16/32 are checked_neg: like add5Reference, they
// leave one input undefined (the width's minimum, whose negation
// doesn't fit back in the same signed width) rather than silently
// wrapping, per spec.md 8.5's checked-arithmetic pattern.
func negateReference8(x int8) (int8, error) {
	if x == -128 {
		return 0, runerr.NotDefined
	}
	return -x, nil
}

func negateReference16(x int16) (int16, error) {
	if x == -0x8000 {
		return 0, runerr.NotDefined
	}
	return -x, nil
}

func negateReference32(x int32) (int32, error) {
	if x == -0x80000000 {
		return 0, runerr.NotDefined
	}
	return -x, nil
}

// buildTargets constructs every named search this driver knows about.
// Each entry pairs one architecture/ABI with one reference function
// from spec.md 8's seed tests (plus add5 from 8.5), so -list always
// names something an equivalence oracle can actually judge.
func buildTargets(seed uint64) map[string]*target {
	targets := map[string]*target{}

	archABI := func(triplet string) tripletConstructor {
		c, ok := tripletRegistry[triplet]
		if !ok {
			panic(fmt.Sprintf("cmd/strop: %q is not in tripletRegistry", triplet))
		}
		return c
	}

	addU8 := func(name, triplet, describe string,
		liveIn, liveOut []insn.Datum, call func(*insn.Sequence, uint8) (uint8, error),
		ref func(uint8) (uint8, error), samples []uint8) {
		c := archABI(triplet)
		pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Purity(), analysis.Dataflow(liveIn, liveOut)}
		var seedCases []oracle.Case[uint8, uint8]
		for _, v := range samples {
			if want, err := ref(v); err == nil {
				seedCases = append(seedCases, oracle.Case[uint8, uint8]{Params: v, Expected: want})
			}
		}
		template := oracle.New[uint8, uint8](seed, ref, seedCases, oracle.RandomU8)
		judgeFactory := func(workerSeed uint64) trace.Judge {
			o := template.Clone(workerSeed)
			return func(seq *insn.Sequence) bool {
				return o.Passes(func(v uint8) (uint8, error) { return call(seq, v) })
			}
		}
		targets[name] = &target{
			name: name, triplet: triplet, describe: describe, factory: c.factory, pipeline: pipeline,
			judgeFactory: judgeFactory, random: c.random,
			cost: costU8(ref, call, samples),
		}
	}

	addU16 := func(name, triplet, describe string,
		liveIn, liveOut []insn.Datum, call func(*insn.Sequence, uint16) (uint16, error),
		ref func(uint16) (uint16, error), samples []uint16) {
		c := archABI(triplet)
		pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Purity(), analysis.Dataflow(liveIn, liveOut)}
		var seedCases []oracle.Case[uint16, uint16]
		for _, v := range samples {
			if want, err := ref(v); err == nil {
				seedCases = append(seedCases, oracle.Case[uint16, uint16]{Params: v, Expected: want})
			}
		}
		template := oracle.New[uint16, uint16](seed, ref, seedCases, oracle.RandomU16)
		judgeFactory := func(workerSeed uint64) trace.Judge {
			o := template.Clone(workerSeed)
			return func(seq *insn.Sequence) bool {
				return o.Passes(func(v uint16) (uint16, error) { return call(seq, v) })
			}
		}
		targets[name] = &target{
			name: name, triplet: triplet, describe: describe, factory: c.factory, pipeline: pipeline,
			judgeFactory: judgeFactory, random: c.random,
			cost: costU16(ref, call, samples),
		}
	}

	addU32 := func(name, triplet, describe string,
		liveIn, liveOut []insn.Datum, call func(*insn.Sequence, uint32) (uint32, error),
		ref func(uint32) (uint32, error), samples []uint32) {
		c := archABI(triplet)
		pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Purity(), analysis.Dataflow(liveIn, liveOut)}
		var seedCases []oracle.Case[uint32, uint32]
		for _, v := range samples {
			if want, err := ref(v); err == nil {
				seedCases = append(seedCases, oracle.Case[uint32, uint32]{Params: v, Expected: want})
			}
		}
		template := oracle.New[uint32, uint32](seed, ref, seedCases, oracle.RandomU32)
		judgeFactory := func(workerSeed uint64) trace.Judge {
			o := template.Clone(workerSeed)
			return func(seq *insn.Sequence) bool {
				return o.Passes(func(v uint32) (uint32, error) { return call(seq, v) })
			}
		}
		targets[name] = &target{
			name: name, triplet: triplet, describe: describe, factory: c.factory, pipeline: pipeline,
			judgeFactory: judgeFactory, random: c.random,
			cost: costU32(ref, call, samples),
		}
	}

	addI8 := func(name, triplet, describe string,
		liveIn, liveOut []insn.Datum, call func(*insn.Sequence, int8) (int8, error),
		ref func(int8) (int8, error), samples []int8) {
		c := archABI(triplet)
		pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Purity(), analysis.Dataflow(liveIn, liveOut)}
		var seedCases []oracle.Case[int8, int8]
		for _, v := range samples {
			if want, err := ref(v); err == nil {
				seedCases = append(seedCases, oracle.Case[int8, int8]{Params: v, Expected: want})
			}
		}
		template := oracle.New[int8, int8](seed, ref, seedCases, oracle.RandomI8)
		judgeFactory := func(workerSeed uint64) trace.Judge {
			o := template.Clone(workerSeed)
			return func(seq *insn.Sequence) bool {
				return o.Passes(func(v int8) (int8, error) { return call(seq, v) })
			}
		}
		targets[name] = &target{
			name: name, triplet: triplet, describe: describe, factory: c.factory, pipeline: pipeline,
			judgeFactory: judgeFactory, random: c.random,
			cost: costI8(ref, call, samples),
		}
	}

	addI16 := func(name, triplet, describe string,
		liveIn, liveOut []insn.Datum, call func(*insn.Sequence, int16) (int16, error),
		ref func(int16) (int16, error), samples []int16) {
		c := archABI(triplet)
		pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Purity(), analysis.Dataflow(liveIn, liveOut)}
		var seedCases []oracle.Case[int16, int16]
		for _, v := range samples {
			if want, err := ref(v); err == nil {
				seedCases = append(seedCases, oracle.Case[int16, int16]{Params: v, Expected: want})
			}
		}
		template := oracle.New[int16, int16](seed, ref, seedCases, oracle.RandomI16)
		judgeFactory := func(workerSeed uint64) trace.Judge {
			o := template.Clone(workerSeed)
			return func(seq *insn.Sequence) bool {
				return o.Passes(func(v int16) (int16, error) { return call(seq, v) })
			}
		}
		targets[name] = &target{
			name: name, triplet: triplet, describe: describe, factory: c.factory, pipeline: pipeline,
			judgeFactory: judgeFactory, random: c.random,
			cost: costI16(ref, call, samples),
		}
	}

	addI32 := func(name, triplet, describe string,
		liveIn, liveOut []insn.Datum, call func(*insn.Sequence, int32) (int32, error),
		ref func(int32) (int32, error), samples []int32) {
		c := archABI(triplet)
		pipeline := analysis.Pipeline{analysis.MakeReturn(), analysis.Purity(), analysis.Dataflow(liveIn, liveOut)}
		var seedCases []oracle.Case[int32, int32]
		for _, v := range samples {
			if want, err := ref(v); err == nil {
				seedCases = append(seedCases, oracle.Case[int32, int32]{Params: v, Expected: want})
			}
		}
		template := oracle.New[int32, int32](seed, ref, seedCases, oracle.RandomI32)
		judgeFactory := func(workerSeed uint64) trace.Judge {
			o := template.Clone(workerSeed)
			return func(seq *insn.Sequence) bool {
				return o.Passes(func(v int32) (int32, error) { return call(seq, v) })
			}
		}
		targets[name] = &target{
			name: name, triplet: triplet, describe: describe, factory: c.factory, pipeline: pipeline,
			judgeFactory: judgeFactory, random: c.random,
			cost: costI32(ref, call, samples),
		}
	}

	addU8("z80/identity8", "z80-unknown-sdcc", "sdcccall(1) fn(u8)->u8 = identity",
		z80.SdccCall1U8.LiveIn, nil,
		func(seq *insn.Sequence, v uint8) (uint8, error) { return z80.SdccCall1U8.Call(seq, v) },
		identityReferenceU8, oracle.QuickU8())

	addU8("z80/add5", "z80-unknown-sdcc", "sdcccall(1) fn(u8)->u8 = x.checked_add(5)",
		z80.SdccCall1U8.LiveIn, z80.SdccCall1U8.LiveOut,
		func(seq *insn.Sequence, v uint8) (uint8, error) { return z80.SdccCall1U8.Call(seq, v) },
		add5Reference, oracle.QuickU8())

	addU16("z80/htons16", "z80-unknown-sdcc", "sdcccall(1) fn(u16)->u16 = byte swap",
		z80.SdccCall1U16.LiveIn, z80.SdccCall1U16.LiveOut,
		func(seq *insn.Sequence, v uint16) (uint16, error) { return z80.SdccCall1U16.Call(seq, v) },
		htonsReference, oracle.QuickU16())

	addU8("sm83/identity8", "sm83-gameboy-sdcc", "Game Boy SM83 fn(u8)->u8 = identity, sdcccall(1)-compatible",
		sm83.SdccCall1U8.LiveIn, nil,
		func(seq *insn.Sequence, v uint8) (uint8, error) { return sm83.SdccCall1U8.Call(seq, v) },
		identityReferenceU8, oracle.QuickU8())

	addU8("mos6502/identity8", "mos6502-unknown-llvm-mos", "llvm-mos fn(u8)->u8 = identity",
		mos6502.LlvmMosU8.LiveIn, nil,
		func(seq *insn.Sequence, v uint8) (uint8, error) { return mos6502.LlvmMosU8.Call(seq, v) },
		identityReferenceU8, oracle.QuickU8())

	addU8("mos6502/add5", "mos6502-unknown-llvm-mos", "llvm-mos fn(u8)->u8 = x.checked_add(5)",
		mos6502.LlvmMosU8.LiveIn, mos6502.LlvmMosU8.LiveOut,
		func(seq *insn.Sequence, v uint8) (uint8, error) { return mos6502.LlvmMosU8.Call(seq, v) },
		add5Reference, oracle.QuickU8())

	addU32("m68k/identity32", "m68k-unknown-elf", "regparm fn(u32)->u32 = identity",
		m68k.Regparm32.LiveIn, nil,
		func(seq *insn.Sequence, v uint32) (uint32, error) { return m68k.Regparm32.Call(seq, v) },
		identityReferenceU32, oracle.QuickU32())

	addU8("m68k/add5", "m68k-unknown-elf", "regparm fn(u8)->u8 = x.checked_add(5), via a u32 register",
		m68k.Regparm32.LiveIn, m68k.Regparm32.LiveOut,
		func(seq *insn.Sequence, v uint8) (uint8, error) {
			got, err := m68k.Regparm32.Call(seq, uint32(v))
			return uint8(got), err
		},
		add5Reference, oracle.QuickU8())

	addU32("arm/identity32", "armv4t-unknown-linux-gnueabi", "AAPCS32 fn(u32)->u32 = identity",
		arm.Aapcs32U32.LiveIn, nil,
		func(seq *insn.Sequence, v uint32) (uint32, error) { return arm.Aapcs32U32.Call(seq, v) },
		identityReferenceU32, oracle.QuickU32())

	addU32("mips/identity32", "mips-unknown-linux-gnu", "O32 fn(u32)->u32 = identity (a0 into v0)",
		mips.O32U32.LiveIn, mips.O32U32.LiveOut,
		func(seq *insn.Sequence, v uint32) (uint32, error) { return mips.O32U32.Call(seq, v) },
		identityReferenceU32, oracle.QuickU32())

	addI8("z80/negate8", "z80-unknown-sdcc", "sdcccall(1) fn(i8)->i8 = x.checked_neg()",
		z80.SdccCall1U8.LiveIn, z80.SdccCall1U8.LiveOut,
		func(seq *insn.Sequence, v int8) (int8, error) {
			got, err := z80.SdccCall1U8.Call(seq, uint8(v))
			return int8(got), err
		},
		negateReference8, oracle.QuickI8())

	addI16("z80/negate16", "z80-unknown-sdcc", "sdcccall(1) fn(i16)->i16 = x.checked_neg()",
		z80.SdccCall1U16.LiveIn, z80.SdccCall1U16.LiveOut,
		func(seq *insn.Sequence, v int16) (int16, error) {
			got, err := z80.SdccCall1U16.Call(seq, uint16(v))
			return int16(got), err
		},
		negateReference16, oracle.QuickI16())

	addI32("m68k/negate32", "m68k-unknown-elf", "regparm fn(i32)->i32 = x.checked_neg()",
		m68k.Regparm32.LiveIn, m68k.Regparm32.LiveOut,
		func(seq *insn.Sequence, v int32) (int32, error) {
			got, err := m68k.Regparm32.Call(seq, uint32(v))
			return int32(got), err
		},
		negateReference32, oracle.QuickI32())

	return targets
}
