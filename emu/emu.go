// Package emu defines the uniform emulator contract described in
// spec.md 4.6, and the shared termination-detection loop every
// architecture's emulator drives its single-step through.
package emu

import "github.com/strop-go/strop/runerr"

// Adapter is implemented by each architecture's emulator. It is
// intentionally narrow: everything the search core needs to run a
// candidate sequence and observe whether it behaved.
type Adapter interface {
	// Reset zeroes every register, parks the stack pointer at its
	// initial top-of-stack address, and clears any loaded code.
	Reset()

	// Load writes code at the architecture's well-known code address,
	// seeds the return slot (link register or on-stack return address,
	// per architecture) with SentinelReturn, and returns the code's
	// start address (the initial PC).
	Load(code []byte) (start uint32)

	// PC and SP report the current program counter and stack pointer,
	// widened to uint32 so the loop in this package can stay
	// architecture-agnostic.
	PC() uint32
	SP() uint32

	// InitialSP is the stack pointer value Reset established; success
	// requires SP to have returned to exactly this value.
	InitialSP() uint32

	// SingleStep executes one instruction. A non-nil error aborts the
	// run immediately (e.g. a decode failure on garbage memory).
	SingleStep() error
}

// SentinelReturn is the fixed return address seeded into the return
// slot (link register or on-stack return address, per architecture)
// before a call. A correct subroutine's own code never reaches this
// address except by actually returning.
const SentinelReturn = 0xF00D

// StackGuardBelow is, relative to InitialSP, how far a stack pointer
// may drop before it is considered a guard-page overflow rather than
// ordinary push activity. 256 bytes is generous for every architecture
// this package supports; none of their calling conventions push more
// than a few words per call.
const StackGuardBelow = 256

// MaxCycles bounds how many single steps call_subroutine will take
// before giving up and reporting DidntReturn (spec.md 4.6: "~1000 per
// call").
const MaxCycles = 1000

// RunLoop drives a.SingleStep() until the subroutine returns, runs
// amok, or exhausts MaxCycles, applying the termination-detection
// rules from spec.md 4.6. codeStart and codeLen bound the legal PC
// range; a PC landing outside that range (and not exactly
// SentinelReturn) is out-of-bounds.
func RunLoop(a Adapter, codeStart, codeLen uint32) error {
	initialSP := a.InitialSP()
	codeEnd := codeStart + codeLen

	for cycles := 0; cycles < MaxCycles; cycles++ {
		// Checked every cycle, not just at the sentinel return: spec.md
		// 8 requires StackUnderflow iff SP ever exceeds InitialSP, and a
		// candidate can push SP past it and then land PC outside the
		// code window before ever reaching SentinelReturn.
		if a.SP() > initialSP {
			return runerr.StackUnderflow
		}

		pc := a.PC()

		if pc == SentinelReturn {
			if a.SP() == initialSP {
				return nil
			}
			return runerr.StackOverflow
		}

		if pc < codeStart || pc >= codeEnd {
			return runerr.ProgramCounterOutOfBounds
		}

		if sp := a.SP(); sp+StackGuardBelow < initialSP {
			return runerr.StackOverflow
		}

		if err := a.SingleStep(); err != nil {
			return err
		}
	}
	return runerr.DidntReturn
}
