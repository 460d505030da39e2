package cpu

// Add computes (a + b) mod 2^w and updates CF/OF/SF/ZF/PF/AF per §4.3.
func Add[T Unsigned](f *Eflags, a, b T) T {
	r := a + b
	computeFlags(opAdd, a, b, r).apply(f)
	return r
}

// Adc computes (a + b + CF_in) mod 2^w. The incoming carry is folded into
// the actual arithmetic result before flags are derived from the full
// three-input sum, not merely computed and discarded.
func Adc[T Unsigned](f *Eflags, a, b T) T {
	var carry T
	if f.CF() {
		carry = 1
	}
	sum := a + b
	r := sum + carry
	// CF/AF reflect the full three-way addition: a carry out of (a+b)
	// followed by a carry out of (+carry) would be lost to a single
	// two-operand flag computation, so those two are OR'd across both
	// chained steps (sound since the true carry-out of a 3-operand add is
	// never more than 1). OF/SF/ZF/PF, by contrast, are single-shot
	// properties of the original operands and the true final result — they
	// must come from comparing a and b directly against r, not from the
	// intermediate sum/carry pair, or a CF_in-induced sign flip is missed.
	fr := computeFlags(opAdd, a, b, sum)
	fr2 := computeFlags(opAdd, sum, carry, r)
	frFinal := computeFlags(opAdd, a, b, r)
	fr.CF = fr.CF || fr2.CF
	fr.AF = fr.AF || fr2.AF
	fr.OF = frFinal.OF
	fr.SF = frFinal.SF
	fr.ZF = frFinal.ZF
	fr.PF = frFinal.PF
	fr.apply(f)
	return r
}

// Sub computes (a - b) mod 2^w and updates flags per §4.3.
func Sub[T Unsigned](f *Eflags, a, b T) T {
	r := a - b
	computeFlags(opSubtract, a, b, r).apply(f)
	return r
}

// Sbb computes (a - b - CF_in) mod 2^w, the incoming carry actually
// subtracted rather than discarded.
func Sbb[T Unsigned](f *Eflags, a, b T) T {
	var borrow T
	if f.CF() {
		borrow = 1
	}
	diff := a - b
	r := diff - borrow
	// Same reasoning as Adc: CF/AF are OR'd across the two chained
	// subtractions, but OF/SF/ZF/PF are derived from the original a, b and
	// the true final r, not from the diff/borrow intermediate pair.
	fr := computeFlags(opSubtract, a, b, diff)
	fr2 := computeFlags(opSubtract, diff, borrow, r)
	frFinal := computeFlags(opSubtract, a, b, r)
	fr.CF = fr.CF || fr2.CF
	fr.AF = fr.AF || fr2.AF
	fr.OF = frFinal.OF
	fr.SF = frFinal.SF
	fr.ZF = frFinal.ZF
	fr.PF = frFinal.PF
	fr.apply(f)
	return r
}

// And computes a & b; CF/OF cleared, SF/ZF/PF computed, AF left unchanged.
func And[T Unsigned](f *Eflags, a, b T) T {
	r := a & b
	applyLogical(f, r)
	return r
}

// Or computes a | b; CF/OF cleared, SF/ZF/PF computed, AF left unchanged.
func Or[T Unsigned](f *Eflags, a, b T) T {
	r := a | b
	applyLogical(f, r)
	return r
}

// Cmp computes a - b for flag purposes only, without returning the
// difference as a value to be stored (used by handlers that only compare).
func Cmp[T Unsigned](f *Eflags, a, b T) {
	Sub(f, a, b)
}
