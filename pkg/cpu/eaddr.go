package cpu

import "github.com/oisee/ia32run/pkg/cpu/errs"

// Scale is the multiplier applied to an index register in an
// EffectiveAddress. Only 1, 2, 4, and 8 are legal.
type Scale uint8

const (
	Scale1 Scale = 1
	Scale2 Scale = 2
	Scale4 Scale = 4
	Scale8 Scale = 8
)

func (s Scale) valid() bool {
	return s == Scale1 || s == Scale2 || s == Scale4 || s == Scale8
}

// EffectiveAddress is base ± index*scale ± disp. Base and Index are optional
// (HasBase/HasIndex); at most two distinct registers ever participate, and
// a scale other than 1 only ever multiplies the index register — this
// mirrors the real ModR/M+SIB shape without carrying any of its binary
// encoding detail.
type EffectiveAddress struct {
	Base     Register32
	HasBase  bool
	Index    Register32
	HasIndex bool
	Scale    Scale
	Disp     int32
}

// Evaluate computes the 32-bit numeric address, summing in the addition
// semigroup modulo 2^32 per §4.6. Subtraction is only ever expressed on the
// displacement term (callers negate Disp when the source text used `-`);
// registers are always added.
func (ea EffectiveAddress) Evaluate(regs *Registers) (uint32, error) {
	if ea.HasIndex && !ea.Scale.valid() {
		return 0, errs.InvalidOp("effective address scale must be 1, 2, 4, or 8")
	}
	if ea.HasBase && ea.HasIndex && ea.Base == ea.Index && ea.Scale != Scale1 {
		// A single register used as both base and scaled index would be a
		// third, distinct logical term; reject it rather than silently
		// double-counting the register.
		return 0, errs.InvalidOp("effective address cannot reuse one register as both base and scaled index")
	}

	var addr uint32
	if ea.HasBase {
		addr += regs.Get32(ea.Base)
	}
	if ea.HasIndex {
		scale := uint32(ea.Scale)
		if scale == 0 {
			scale = 1
		}
		addr += regs.Get32(ea.Index) * scale
	}
	addr += uint32(ea.Disp)
	return addr, nil
}
