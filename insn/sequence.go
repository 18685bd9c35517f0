package insn

import "strings"

// Sequence is an ordered, finite list of instructions: a point in the
// search space. Its operations walk around that space rather than
// describe a fixed program.
type Sequence struct {
	factory Factory
	items   []Instruction
}

// NewSequence returns the empty sequence for the given instruction
// family.
func NewSequence(factory Factory) *Sequence {
	return &Sequence{factory: factory}
}

// Len reports the number of instructions (the sequence's length, in
// positions, not bytes).
func (s *Sequence) Len() int { return len(s.items) }

// At returns the instruction at offset i.
func (s *Sequence) At(i int) Instruction { return s.items[i] }

// Set replaces the instruction at offset i.
func (s *Sequence) Set(i int, v Instruction) { s.items[i] = v }

// Insert inserts v at offset i, shifting later instructions up by one
// position. Used by the stochastic searcher's insert mutation.
func (s *Sequence) Insert(i int, v Instruction) {
	s.items = append(s.items, nil)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = v
}

// Remove deletes the instruction at offset i, shifting later
// instructions down by one position. Used by the stochastic searcher's
// delete mutation.
func (s *Sequence) Remove(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// LastOffset returns the index of the last instruction. Callers must
// not call it on an empty sequence.
func (s *Sequence) LastOffset() int { return len(s.items) - 1 }

// Factory returns the instruction family's First() factory, so
// composed structures (subroutines, calling-convention bindings) can
// build their own empty Sequence of the same family.
func (s *Sequence) Factory() Factory { return s.factory }

// Clone returns an independent copy; instructions are cloned too, so
// mutating the copy never mutates the original.
func (s *Sequence) Clone() *Sequence {
	items := make([]Instruction, len(s.items))
	for i, it := range s.items {
		items[i] = it.Clone()
	}
	return &Sequence{factory: s.factory, items: items}
}

// ByteOffsets returns the byte offset of each instruction's first byte,
// plus one trailing entry for the sequence's total encoded length (the
// position one-past-the-end, just after the last instruction).
func (s *Sequence) ByteOffsets() []int {
	offsets := make([]int, len(s.items)+1)
	total := 0
	for i, it := range s.items {
		offsets[i] = total
		total += it.Length()
	}
	offsets[len(s.items)] = total
	return offsets
}

// Encode concatenates the per-instruction encodings.
func (s *Sequence) Encode() []byte {
	out := make([]byte, 0, len(s.items)*2)
	for _, it := range s.items {
		out = append(out, it.Encode()...)
	}
	return out
}

// String disassembles every instruction, one per line.
func (s *Sequence) String() string {
	var b strings.Builder
	for _, it := range s.items {
		b.WriteString(it.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// stepAt performs the odometer carry starting at offset: increment the
// instruction there; on local End, reset it to First() and carry into
// offset+1; if that carries past the end, the sequence grows by one
// position.
func (s *Sequence) stepAt(offset int) {
	if offset == len(s.items) {
		s.items = append(s.items, s.factory())
		return
	}
	if err := s.items[offset].Next(); err != nil {
		s.items[offset] = s.factory()
		s.stepAt(offset + 1)
		return
	}
}

// Next performs one odometer increment at position 0. It never
// returns End: the sequence space is infinite, since exhausting the
// final position simply grows the sequence by one.
func (s *Sequence) Next() {
	s.stepAt(0)
}

// MutAt applies advance to the instruction at offset; this is the
// primitive the search engine uses to apply a Fixup, skipping whole
// sub-regions of the space that static analysis has proven dead. On
// local End, it resets that position to First() and recurses at
// offset+1, growing the sequence if offset+1 is past the end.
func (s *Sequence) MutAt(advance func(Instruction) error, offset int) {
	if offset == len(s.items) {
		s.items = append(s.items, s.factory())
		return
	}
	if err := advance(s.items[offset]); err != nil {
		s.items[offset] = s.factory()
		s.MutAt(advance, offset+1)
	}
}
