// Package runerr defines the error taxonomy surfaced by candidate
// execution and by the driver's structural checks.
package runerr

import "errors"

// RunError is returned when a candidate sequence fails to execute
// normally under the emulator. It is always a value, never a panic:
// a failing candidate is simply rejected by the oracle, not retried.
var (
	// RanAmok is the generic non-termination umbrella: the candidate
	// did something the emulator adapter couldn't make sense of.
	RanAmok = errors.New("runerr: candidate ran amok")

	// StackUnderflow is reported when SP rises above its initial value,
	// i.e. the candidate popped more than it pushed.
	StackUnderflow = errors.New("runerr: stack underflow")

	// StackOverflow is reported when SP drops below a guard threshold
	// below its initial value.
	StackOverflow = errors.New("runerr: stack overflow")

	// ProgramCounterOutOfBounds is reported when PC leaves the code
	// window without having reached the sentinel return address.
	ProgramCounterOutOfBounds = errors.New("runerr: program counter left the code window")

	// DidntReturn is reported when the cycle budget is exhausted
	// without the subroutine reaching its sentinel return address.
	DidntReturn = errors.New("runerr: subroutine didn't return within its cycle budget")

	// NotDefined means the reference function has no opinion on this
	// input; a candidate is free to do anything for it, short of
	// failing to terminate (see the Open Question decision in
	// DESIGN.md: non-termination is always a failure).
	NotDefined = errors.New("runerr: reference function undefined for this input")
)

// StropError is the structural error channel: unsupported ABI
// mappings, unknown target triplets, and an exhausted search space
// under a length cap. These are returned to the driver, never
// retried, never silently discarded.
var (
	// UnsupportedArgumentType means a parameter or return type has no
	// ABI mapping for the chosen calling convention.
	UnsupportedArgumentType = errors.New("strop: parameter or return type has no ABI mapping")

	// UnknownTriplet means the driver was asked for a target triplet
	// the triplet registry doesn't recognise.
	UnknownTriplet = errors.New("strop: unknown target triplet")

	// SearchSpaceExhausted means a length-capped bruteforce search
	// ran off the end of its cap without finding a solution.
	SearchSpaceExhausted = errors.New("strop: search space exhausted under the configured length cap")
)
