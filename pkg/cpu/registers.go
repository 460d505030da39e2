package cpu

// Register32 names a 32-bit general-purpose register. Values match the
// x86 ModR/M register-field numbering (EAX=0 .. EDI=7) so the register file
// can be backed by a flat array indexed uniformly across widths, instead of
// one named struct field per register.
type Register32 uint8

const (
	EAX Register32 = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
)

func (r Register32) String() string {
	return [...]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}[r]
}

// Register16 names the low 16 bits of the correspondingly-indexed 32-bit
// register (AX aliases EAX, and so on).
type Register16 uint8

const (
	AX Register16 = iota
	CX
	DX
	BX
	SP
	BP
	SI
	DI
)

func (r Register16) String() string {
	return [...]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}[r]
}

// gpIndex returns the Register32 this 16-bit alias overlays.
func (r Register16) gpIndex() Register32 { return Register32(r) }

// Register8 names one of the eight legacy 8-bit registers. AL..BL (0-3)
// alias the low byte of EAX..EBX; AH..BH (4-7) alias the second byte.
type Register8 uint8

const (
	AL Register8 = iota
	CL
	DL
	BL
	AH
	CH
	DH
	BH
)

func (r Register8) String() string {
	return [...]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}[r]
}

// gpIndex and high report which 32-bit register and which byte this alias views.
func (r Register8) gpIndex() Register32 {
	if r >= AH {
		return Register32(r - AH)
	}
	return Register32(r)
}

func (r Register8) high() bool { return r >= AH }

// SegmentRegister names one of the six 16-bit segment registers.
type SegmentRegister uint8

const (
	CS SegmentRegister = iota
	DS
	ES
	FS
	GS
	SS
)

func (r SegmentRegister) String() string {
	return [...]string{"cs", "ds", "es", "fs", "gs", "ss"}[r]
}

// Registers holds the architectural register file: eight 32-bit
// general-purpose registers (with structural 16/8-bit aliasing views, not
// separate synchronized storage), six 16-bit segment registers, EIP, and
// EFLAGS.
type Registers struct {
	gp       [8]uint32
	segments [6]uint16
	eip      uint32
	eflags   Eflags
}

// NewRegisters returns a zero-initialized register file (segments default
// to zero per the flat, unsegmented memory model) with EFLAGS reset.
func NewRegisters() *Registers {
	return &Registers{eflags: NewEflags()}
}

// Get32 reads the full 32-bit register.
func (r *Registers) Get32(reg Register32) uint32 { return r.gp[reg] }

// Set32 replaces all 32 bits of the register.
func (r *Registers) Set32(reg Register32, v uint32) { r.gp[reg] = v }

// Get16 reads the low 16 bits of the aliased 32-bit register.
func (r *Registers) Get16(reg Register16) uint16 {
	return uint16(r.gp[reg.gpIndex()])
}

// Set16 replaces bits [15:0] of the aliased 32-bit register, preserving [31:16].
func (r *Registers) Set16(reg Register16, v uint16) {
	idx := reg.gpIndex()
	r.gp[idx] = (r.gp[idx] &^ 0xFFFF) | uint32(v)
}

// Get8 reads the aliased byte (bits [7:0] or [15:8]) of the owning register.
func (r *Registers) Get8(reg Register8) uint8 {
	v := r.gp[reg.gpIndex()]
	if reg.high() {
		return uint8(v >> 8)
	}
	return uint8(v)
}

// Set8 replaces the aliased byte, preserving every other bit of the owning
// 32-bit register.
func (r *Registers) Set8(reg Register8, v uint8) {
	idx := reg.gpIndex()
	if reg.high() {
		r.gp[idx] = (r.gp[idx] &^ 0xFF00) | uint32(v)<<8
	} else {
		r.gp[idx] = (r.gp[idx] &^ 0xFF) | uint32(v)
	}
}

// GetSegment reads a 16-bit segment register.
func (r *Registers) GetSegment(seg SegmentRegister) uint16 { return r.segments[seg] }

// SetSegment replaces all 16 bits of a segment register.
func (r *Registers) SetSegment(seg SegmentRegister, v uint16) { r.segments[seg] = v }

// EIP returns the instruction pointer.
func (r *Registers) EIP() uint32 { return r.eip }

// SetEIP overwrites the instruction pointer.
func (r *Registers) SetEIP(v uint32) { r.eip = v }

// Eflags returns a pointer to the status/control register so callers
// (the flags engine, primitives) can read and mutate it in place.
func (r *Registers) Eflags() *Eflags { return &r.eflags }

// ESPValue is a convenience accessor: the stack pointer, as a plain 32-bit
// value, used by push/pop regardless of whether the caller is manipulating
// it via Register32 or Register16 (SP).
func (r *Registers) ESPValue() uint32 { return r.gp[ESP] }

// SetESPValue updates the stack pointer. It writes the same storage word as
// Set32(ESP) and Set16(SP): SP and ESP share index 4 with no special case,
// so an SP write never lands in EBP storage.
func (r *Registers) SetESPValue(v uint32) { r.gp[ESP] = v }
