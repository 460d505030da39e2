package cpu

// Push16 decrements ESP by 2 then writes v at the new ESP, per §4.5.
func Push16(regs *Registers, mem *Memory, v uint16) error {
	sp := regs.ESPValue() - 2
	if err := mem.Write16(sp, v); err != nil {
		return err
	}
	regs.SetESPValue(sp)
	return nil
}

// Push32 decrements ESP by 4 then writes v at the new ESP.
func Push32(regs *Registers, mem *Memory, v uint32) error {
	sp := regs.ESPValue() - 4
	if err := mem.Write32(sp, v); err != nil {
		return err
	}
	regs.SetESPValue(sp)
	return nil
}

// Pop16 reads the 16-bit value at ESP, then increments ESP by 2. This reads
// before it advances the pointer — the standard semantics, not the
// increment-before-read order found in the reference implementation (see
// DESIGN.md Open Question 2).
func Pop16(regs *Registers, mem *Memory) (uint16, error) {
	sp := regs.ESPValue()
	v, err := mem.Read16(sp)
	if err != nil {
		return 0, err
	}
	regs.SetESPValue(sp + 2)
	return v, nil
}

// Pop32 reads the 32-bit value at ESP, then increments ESP by 4.
func Pop32(regs *Registers, mem *Memory) (uint32, error) {
	sp := regs.ESPValue()
	v, err := mem.Read32(sp)
	if err != nil {
		return 0, err
	}
	regs.SetESPValue(sp + 4)
	return v, nil
}

// PushSegment pushes a segment register using the 16-bit stack convention
// that applies to segment push/pop regardless of operand size.
func PushSegment(regs *Registers, mem *Memory, seg SegmentRegister) error {
	return Push16(regs, mem, regs.GetSegment(seg))
}

// PopSegment pops into a segment register using the 16-bit convention.
func PopSegment(regs *Registers, mem *Memory, seg SegmentRegister) error {
	v, err := Pop16(regs, mem)
	if err != nil {
		return err
	}
	regs.SetSegment(seg, v)
	return nil
}
