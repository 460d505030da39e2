package cpu

import "fmt"

// Snapshot is a flat, comparable view of the architectural state, used for
// tracing and for test assertions (via testify's assert.Equal) in place of
// a hand-rolled Equal method.
type Snapshot struct {
	EAX, ECX, EDX, EBX uint32
	ESP, EBP, ESI, EDI uint32
	EIP                uint32
	Eflags             uint32
}

// Snapshot captures the current register file.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		EAX: c.Regs.Get32(EAX), ECX: c.Regs.Get32(ECX),
		EDX: c.Regs.Get32(EDX), EBX: c.Regs.Get32(EBX),
		ESP: c.Regs.Get32(ESP), EBP: c.Regs.Get32(EBP),
		ESI: c.Regs.Get32(ESI), EDI: c.Regs.Get32(EDI),
		EIP:    c.Regs.EIP(),
		Eflags: c.Regs.Eflags().Raw(),
	}
}

// String renders a one-line trace record.
func (s Snapshot) String() string {
	return fmt.Sprintf(
		"eax=%08x ecx=%08x edx=%08x ebx=%08x esp=%08x ebp=%08x esi=%08x edi=%08x eip=%08x eflags=%08x",
		s.EAX, s.ECX, s.EDX, s.EBX, s.ESP, s.EBP, s.ESI, s.EDI, s.EIP, s.Eflags,
	)
}
