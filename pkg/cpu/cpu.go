package cpu

import "github.com/oisee/ia32run/pkg/cpu/errs"

// CPU is the sole owner of the architectural state: registers and memory.
// All mutation funnels through its methods; there is no shared mutable
// state outside of one CPU instance.
type CPU struct {
	Regs *Registers
	Mem  *Memory
}

// New returns a CPU with zeroed registers (EFLAGS at its reset value) and a
// freshly zero-initialized 1 MiB memory.
func New() *CPU {
	return &CPU{Regs: NewRegisters(), Mem: NewMemory()}
}

// ReadOperand8 evaluates an operand as an 8-bit value. Source reads never
// mutate state.
func (c *CPU) ReadOperand8(o Operand) (uint8, error) {
	switch o.Kind {
	case OperandImmediate:
		return uint8(o.Imm), nil
	case OperandReg8:
		return c.Regs.Get8(o.Reg8), nil
	case OperandMemory:
		if o.MemSize != SizeByte {
			return 0, errs.ConversionFailure("memory operand width does not match 8-bit access")
		}
		addr, err := o.Addr.Evaluate(c.Regs)
		if err != nil {
			return 0, err
		}
		return c.Mem.Read8(addr)
	default:
		return 0, errs.ConversionFailure("operand is not 8-bit")
	}
}

// ReadOperand16 evaluates an operand as a 16-bit value.
func (c *CPU) ReadOperand16(o Operand) (uint16, error) {
	switch o.Kind {
	case OperandImmediate:
		return uint16(o.Imm), nil
	case OperandReg16:
		return c.Regs.Get16(o.Reg16), nil
	case OperandMemory:
		if o.MemSize != SizeWord {
			return 0, errs.ConversionFailure("memory operand width does not match 16-bit access")
		}
		addr, err := o.Addr.Evaluate(c.Regs)
		if err != nil {
			return 0, err
		}
		return c.Mem.Read16(addr)
	default:
		return 0, errs.ConversionFailure("operand is not 16-bit")
	}
}

// ReadOperand32 evaluates an operand as a 32-bit value.
func (c *CPU) ReadOperand32(o Operand) (uint32, error) {
	switch o.Kind {
	case OperandImmediate:
		return o.Imm, nil
	case OperandReg32:
		return c.Regs.Get32(o.Reg32), nil
	case OperandMemory:
		if o.MemSize != SizeDword {
			return 0, errs.ConversionFailure("memory operand width does not match 32-bit access")
		}
		addr, err := o.Addr.Evaluate(c.Regs)
		if err != nil {
			return 0, err
		}
		return c.Mem.Read32(addr)
	default:
		return 0, errs.ConversionFailure("operand is not 32-bit")
	}
}

// WriteOperand8 stores an 8-bit value into a register or memory destination.
func (c *CPU) WriteOperand8(o Operand, v uint8) error {
	switch o.Kind {
	case OperandReg8:
		c.Regs.Set8(o.Reg8, v)
		return nil
	case OperandMemory:
		if o.MemSize != SizeByte {
			return errs.ConversionFailure("memory operand width does not match 8-bit access")
		}
		addr, err := o.Addr.Evaluate(c.Regs)
		if err != nil {
			return err
		}
		return c.Mem.Write8(addr, v)
	default:
		return errs.ConversionFailure("operand is not a valid 8-bit destination")
	}
}

// WriteOperand16 stores a 16-bit value into a register or memory destination.
func (c *CPU) WriteOperand16(o Operand, v uint16) error {
	switch o.Kind {
	case OperandReg16:
		c.Regs.Set16(o.Reg16, v)
		return nil
	case OperandMemory:
		if o.MemSize != SizeWord {
			return errs.ConversionFailure("memory operand width does not match 16-bit access")
		}
		addr, err := o.Addr.Evaluate(c.Regs)
		if err != nil {
			return err
		}
		return c.Mem.Write16(addr, v)
	default:
		return errs.ConversionFailure("operand is not a valid 16-bit destination")
	}
}

// WriteOperand32 stores a 32-bit value into a register or memory destination.
func (c *CPU) WriteOperand32(o Operand, v uint32) error {
	switch o.Kind {
	case OperandReg32:
		c.Regs.Set32(o.Reg32, v)
		return nil
	case OperandMemory:
		if o.MemSize != SizeDword {
			return errs.ConversionFailure("memory operand width does not match 32-bit access")
		}
		addr, err := o.Addr.Evaluate(c.Regs)
		if err != nil {
			return err
		}
		return c.Mem.Write32(addr, v)
	default:
		return errs.ConversionFailure("operand is not a valid 32-bit destination")
	}
}
