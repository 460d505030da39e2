package cpu

import (
	"fmt"

	"github.com/oisee/ia32run/pkg/cpu/errs"
)

// Mnemonic identifies the operation an Instruction requests. Only the
// mnemonics the execution core is specified for are listed; anything else
// is an InvalidInstruction.
type Mnemonic uint8

const (
	MOV Mnemonic = iota
	LEA
	PUSH
	POP
	ADD
	ADC
	SUB
	SBB
	AND
	OR
	CMP
	DAA
)

func (m Mnemonic) String() string {
	return [...]string{"mov", "lea", "push", "pop", "add", "adc", "sub", "sbb", "and", "or", "cmp", "daa"}[m]
}

// Instruction is a mnemonic plus its ordered operand list. It has no
// persistent identity: produced by the front end, consumed once by Exec.
type Instruction struct {
	Op       Mnemonic
	Operands []Operand
}

// Exec dispatches one instruction: it selects a handler keyed by
// (mnemonic, operand-shape), reads sources, invokes the relevant primitive,
// writes the destination, and lets the primitive update flags. Instructions
// with no arithmetic effect (MOV, LEA, PUSH, POP) never touch flags.
//
// Ordering guarantee: within a call, every source read happens before the
// destination write. A failed source read leaves the destination and flags
// untouched; a failed destination write after flag computation leaves the
// destination unmodified (Memory.Write* is all-or-nothing) and restores
// EFLAGS to its value before the instruction, so an aborted instruction
// leaks no flag update.
func (c *CPU) Exec(ins Instruction) error {
	switch ins.Op {
	case MOV:
		return c.execMov(ins.Operands)
	case LEA:
		return c.execLea(ins.Operands)
	case PUSH:
		return c.execPush(ins.Operands)
	case POP:
		return c.execPop(ins.Operands)
	case ADD:
		return c.execBinary(ADD, ins.Operands, Add[uint8], Add[uint16], Add[uint32])
	case ADC:
		return c.execBinary(ADC, ins.Operands, Adc[uint8], Adc[uint16], Adc[uint32])
	case SUB:
		return c.execBinary(SUB, ins.Operands, Sub[uint8], Sub[uint16], Sub[uint32])
	case SBB:
		return c.execBinary(SBB, ins.Operands, Sbb[uint8], Sbb[uint16], Sbb[uint32])
	case AND:
		return c.execBinary(AND, ins.Operands, And[uint8], And[uint16], And[uint32])
	case OR:
		return c.execBinary(OR, ins.Operands, Or[uint8], Or[uint16], Or[uint32])
	case CMP:
		return c.execCmp(ins.Operands)
	case DAA:
		return errs.Unimplemented("DAA")
	default:
		return errs.InvalidOp("no handler for this mnemonic")
	}
}

func operandShapeError(op Mnemonic, operands []Operand) error {
	return errs.InvalidOp(fmt.Sprintf("%s: operand shape mismatch (%d operands); the decoder should never produce this", op, len(operands)))
}

// execMov copies the source value into a destination of the same width
// without touching flags.
func (c *CPU) execMov(operands []Operand) error {
	if len(operands) != 2 {
		return operandShapeError(MOV, operands)
	}
	dst, src := operands[0], operands[1]
	// An immediate's width is implicit from the instruction form, not a
	// property of the Operand value itself, so it is exempt from the
	// matching-width requirement that applies to register/memory pairs.
	if src.Kind != OperandImmediate && dst.Size() != src.Size() {
		return errs.ConversionFailure("mov requires matching source and destination widths")
	}
	switch dst.Size() {
	case SizeByte:
		v, err := c.ReadOperand8(src)
		if err != nil {
			return err
		}
		return c.WriteOperand8(dst, v)
	case SizeWord:
		v, err := c.ReadOperand16(src)
		if err != nil {
			return err
		}
		return c.WriteOperand16(dst, v)
	default:
		v, err := c.ReadOperand32(src)
		if err != nil {
			return err
		}
		return c.WriteOperand32(dst, v)
	}
}

// execLea computes the numeric value of an effective address and stores it,
// without performing a memory load. Flags are never touched.
func (c *CPU) execLea(operands []Operand) error {
	if len(operands) != 2 {
		return operandShapeError(LEA, operands)
	}
	dst, src := operands[0], operands[1]
	if src.Kind != OperandMemory {
		return errs.ConversionFailure("lea requires a memory source operand")
	}
	addr, err := src.Addr.Evaluate(c.Regs)
	if err != nil {
		return err
	}
	switch dst.Size() {
	case SizeWord:
		return c.WriteOperand16(dst, uint16(addr))
	case SizeDword:
		return c.WriteOperand32(dst, addr)
	default:
		return errs.ConversionFailure("lea destination must be a 16- or 32-bit register")
	}
}

func (c *CPU) execPush(operands []Operand) error {
	if len(operands) != 1 {
		return operandShapeError(PUSH, operands)
	}
	src := operands[0]
	switch src.Size() {
	case SizeWord:
		v, err := c.ReadOperand16(src)
		if err != nil {
			return err
		}
		return Push16(c.Regs, c.Mem, v)
	case SizeDword:
		v, err := c.ReadOperand32(src)
		if err != nil {
			return err
		}
		return Push32(c.Regs, c.Mem, v)
	default:
		return errs.ConversionFailure("push operand must be 16 or 32 bits")
	}
}

func (c *CPU) execPop(operands []Operand) error {
	if len(operands) != 1 {
		return operandShapeError(POP, operands)
	}
	dst := operands[0]
	switch dst.Size() {
	case SizeWord:
		v, err := Pop16(c.Regs, c.Mem)
		if err != nil {
			return err
		}
		return c.WriteOperand16(dst, v)
	case SizeDword:
		v, err := Pop32(c.Regs, c.Mem)
		if err != nil {
			return err
		}
		return c.WriteOperand32(dst, v)
	default:
		return errs.ConversionFailure("pop operand must be 16 or 32 bits")
	}
}

func (c *CPU) execCmp(operands []Operand) error {
	if len(operands) != 2 {
		return operandShapeError(CMP, operands)
	}
	a, b := operands[0], operands[1]
	switch a.Size() {
	case SizeByte:
		av, err := c.ReadOperand8(a)
		if err != nil {
			return err
		}
		bv, err := c.ReadOperand8(b)
		if err != nil {
			return err
		}
		Cmp(c.Regs.Eflags(), av, bv)
	case SizeWord:
		av, err := c.ReadOperand16(a)
		if err != nil {
			return err
		}
		bv, err := c.ReadOperand16(b)
		if err != nil {
			return err
		}
		Cmp(c.Regs.Eflags(), av, bv)
	default:
		av, err := c.ReadOperand32(a)
		if err != nil {
			return err
		}
		bv, err := c.ReadOperand32(b)
		if err != nil {
			return err
		}
		Cmp(c.Regs.Eflags(), av, bv)
	}
	return nil
}

// execBinary is shared by ADD/ADC/SUB/SBB/AND/OR: read both sources, invoke
// the width-selected primitive (which updates flags), write the destination.
func (c *CPU) execBinary(
	mnemonic Mnemonic,
	operands []Operand,
	op8 func(*Eflags, uint8, uint8) uint8,
	op16 func(*Eflags, uint16, uint16) uint16,
	op32 func(*Eflags, uint32, uint32) uint32,
) (err error) {
	if len(operands) != 2 {
		return operandShapeError(mnemonic, operands)
	}
	saved := *c.Regs.Eflags()
	defer func() {
		if err != nil {
			*c.Regs.Eflags() = saved
		}
	}()
	dst, src := operands[0], operands[1]
	switch dst.Size() {
	case SizeByte:
		a, err := c.ReadOperand8(dst)
		if err != nil {
			return err
		}
		b, err := c.ReadOperand8(src)
		if err != nil {
			return err
		}
		r := op8(c.Regs.Eflags(), a, b)
		return c.WriteOperand8(dst, r)
	case SizeWord:
		a, err := c.ReadOperand16(dst)
		if err != nil {
			return err
		}
		b, err := c.ReadOperand16(src)
		if err != nil {
			return err
		}
		r := op16(c.Regs.Eflags(), a, b)
		return c.WriteOperand16(dst, r)
	default:
		a, err := c.ReadOperand32(dst)
		if err != nil {
			return err
		}
		b, err := c.ReadOperand32(src)
		if err != nil {
			return err
		}
		r := op32(c.Regs.Eflags(), a, b)
		return c.WriteOperand32(dst, r)
	}
}
