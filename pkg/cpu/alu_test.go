package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAddSubFlagTruthTable reproduces the 8-bit add/sub truth table
// bit-exactly: OF, SF, ZF, CF for each (op, a, b) triple.
func TestAddSubFlagTruthTable(t *testing.T) {
	type row struct {
		add                bool
		a, b, want         uint8
		of, sf, zf, cf     bool
	}
	rows := []row{
		{true, 0x7F, 0x00, 0x7F, false, false, false, false},
		{true, 0xFF, 0x7F, 0x7E, false, false, false, true},
		{true, 0x00, 0x00, 0x00, false, false, true, false},
		{true, 0xFF, 0x01, 0x00, false, false, true, true},
		{true, 0xFF, 0x80, 0x7F, true, false, false, true},
		{true, 0x80, 0x80, 0x00, true, false, true, true},
		{true, 0x7F, 0x7F, 0xFE, true, true, false, false},
		{false, 0xFF, 0xFE, 0x01, false, false, false, false},
		{false, 0x7E, 0xFF, 0x7F, false, false, false, true},
		{false, 0xFF, 0xFF, 0x00, false, false, true, false},
		{false, 0xFF, 0x7F, 0x80, false, true, false, false},
		{false, 0x7F, 0xFF, 0x80, true, true, false, true},
	}

	for _, r := range rows {
		f := NewEflags()
		var got uint8
		if r.add {
			got = Add(&f, r.a, r.b)
		} else {
			got = Sub(&f, r.a, r.b)
		}
		require.Equalf(t, r.want, got, "a=%#x b=%#x add=%v", r.a, r.b, r.add)
		require.Equalf(t, r.of, f.OF(), "OF a=%#x b=%#x add=%v", r.a, r.b, r.add)
		require.Equalf(t, r.sf, f.SF(), "SF a=%#x b=%#x add=%v", r.a, r.b, r.add)
		require.Equalf(t, r.zf, f.ZF(), "ZF a=%#x b=%#x add=%v", r.a, r.b, r.add)
		require.Equalf(t, r.cf, f.CF(), "CF a=%#x b=%#x add=%v", r.a, r.b, r.add)
	}
}

func TestParityLaw(t *testing.T) {
	for i := 0; i < 256; i++ {
		bits := 0
		for v := i; v != 0; v >>= 1 {
			bits += v & 1
		}
		require.Equal(t, bits%2 == 0, parityTable[i])
	}
}

func TestAndOrClearCarryOverflow(t *testing.T) {
	f := NewEflags()
	f.SetCF(true)
	f.SetOF(true)

	r := And(&f, uint8(0xF0), uint8(0x0F))
	require.Equal(t, uint8(0), r)
	require.False(t, f.CF())
	require.False(t, f.OF())
	require.True(t, f.ZF())
	require.False(t, f.SF())

	f.SetCF(true)
	f.SetOF(true)
	r = Or(&f, uint8(0), uint8(0))
	require.Equal(t, uint8(0), r)
	require.False(t, f.CF())
	require.False(t, f.OF())
	require.True(t, f.ZF())
}

// TestAdcFoldsIncomingCarry is the negative test for the confirmed
// reference bug: a naive port that computes the carry-adjusted result and
// discards it would fail this.
func TestAdcFoldsIncomingCarry(t *testing.T) {
	f := NewEflags()
	f.SetCF(true)

	got := Adc(&f, uint8(0x01), uint8(0x01))
	require.Equal(t, uint8(0x03), got)
}

func TestSbbFoldsIncomingCarry(t *testing.T) {
	f := NewEflags()
	f.SetCF(true)

	got := Sbb(&f, uint8(0x05), uint8(0x01))
	require.Equal(t, uint8(0x03), got)
}

// TestAdcOverflowFromCarryIn exercises a sign flip caused only by CF_in: the
// two-operand sum 0x7F+0x00 alone does not overflow, but folding in the
// incoming carry pushes the result past 0x7F and flips the sign bit, so OF
// must be derived from the original operands against the true final result,
// not from the intermediate sum/carry pair.
func TestAdcOverflowFromCarryIn(t *testing.T) {
	f := NewEflags()
	f.SetCF(true)

	got := Adc(&f, uint8(0x7F), uint8(0x00))
	require.Equal(t, uint8(0x80), got)
	require.True(t, f.OF())
	require.True(t, f.SF())
}

// TestSbbOverflowFromCarryIn is the symmetric case for Sbb: 0x80-0x00 alone
// does not overflow, but the incoming borrow takes the result to 0x7F.
func TestSbbOverflowFromCarryIn(t *testing.T) {
	f := NewEflags()
	f.SetCF(true)

	got := Sbb(&f, uint8(0x80), uint8(0x00))
	require.Equal(t, uint8(0x7F), got)
	require.True(t, f.OF())
	require.False(t, f.SF())
}

func TestAdcCarryChain32(t *testing.T) {
	f := NewEflags()
	f.SetCF(true)
	got := Adc(&f, uint32(0xFFFFFFFF), uint32(0))
	require.Equal(t, uint32(0), got)
	require.True(t, f.CF())
	require.True(t, f.ZF())
}
