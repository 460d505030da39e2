package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAliasing(t *testing.T) {
	type abcd struct {
		r32       Register32
		r16       Register16
		high, low Register8
	}
	all := []abcd{
		{EAX, AX, AH, AL},
		{EBX, BX, BH, BL},
		{ECX, CX, CH, CL},
		{EDX, DX, DH, DL},
	}

	for _, r := range all {
		regs := NewRegisters()
		regs.Set32(r.r32, 0xDEADC0DE)

		require.Equal(t, uint16(0xC0DE), regs.Get16(r.r16))
		require.Equal(t, uint8(0xC0), regs.Get8(r.high))
		require.Equal(t, uint8(0xDE), regs.Get8(r.low))

		regs.Set16(r.r16, 0xB33F)
		require.Equal(t, uint32(0xDEADB33F), regs.Get32(r.r32))

		regs.Set8(r.low, 0x11)
		require.Equal(t, uint32(0xDEADB311), regs.Get32(r.r32))

		regs.Set8(r.high, 0x22)
		require.Equal(t, uint32(0xDEAD2211), regs.Get32(r.r32))
	}
}

func TestMovWidthIsolation(t *testing.T) {
	c := New()
	c.Regs.Set8(BH, 1)
	c.Regs.Set8(AL, 0xFF)

	err := c.Exec(Instruction{Op: MOV, Operands: []Operand{Reg8Operand(AH), Reg8Operand(BH)}})
	require.NoError(t, err)
	require.Equal(t, uint16(0x01FF), c.Regs.Get16(AX))
}

func TestSegmentRegisterWrite(t *testing.T) {
	regs := NewRegisters()
	require.Equal(t, uint16(0), regs.GetSegment(DS))
	regs.SetSegment(DS, 0x1234)
	require.Equal(t, uint16(0x1234), regs.GetSegment(DS))
}

func TestEflagsDefault(t *testing.T) {
	f := NewEflags()
	require.Equal(t, uint32(1<<1), f.Raw())
	require.False(t, f.CF())
	require.False(t, f.ZF())
}
