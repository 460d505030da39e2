package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip32(t *testing.T) {
	m := NewMemory()
	cases := []uint32{0, 1, 0x12345678, 0xFFFFFFFF, 0xDEADC0DE}
	for _, v := range cases {
		addr := uint32(100)
		require.NoError(t, m.Write32(addr, v))

		got, err := m.Read32(addr)
		require.NoError(t, err)
		require.Equal(t, v, got)

		lo, err := m.Read16(addr)
		require.NoError(t, err)
		require.Equal(t, uint16(v&0xFFFF), lo)

		hi, err := m.Read16(addr + 2)
		require.NoError(t, err)
		require.Equal(t, uint16(v>>16), hi)
	}
}

func TestMemoryOutOfRange(t *testing.T) {
	m := NewMemory()

	_, err := m.Read8(MemorySize)
	require.Error(t, err)

	_, err = m.Read32(MemorySize - 3)
	require.Error(t, err)
}

func TestMemoryWriteAllOrNothing(t *testing.T) {
	m := NewMemory()
	addr := uint32(MemorySize - 2)

	require.NoError(t, m.Write8(addr, 0xAA))
	err := m.Write32(addr, 0xDEADBEEF)
	require.Error(t, err)

	v, err := m.Read8(addr)
	require.NoError(t, err)
	require.Equal(t, uint8(0xAA), v, "a failed multi-byte write must not touch any byte")
}
