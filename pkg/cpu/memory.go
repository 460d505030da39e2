package cpu

import "github.com/oisee/ia32run/pkg/cpu/errs"

// MemorySize is the flat address space size: 1 MiB.
const MemorySize = 1 << 20

// Memory is a fixed-size, bounds-checked, little-endian byte array.
// It is heap-allocated so it never lives on a goroutine's limited stack.
type Memory struct {
	bytes *[MemorySize]byte
}

// NewMemory returns a zero-initialized 1 MiB memory.
func NewMemory() *Memory {
	return &Memory{bytes: new([MemorySize]byte)}
}

func (m *Memory) inRange(addr uint32) bool {
	return uint64(addr) < MemorySize
}

// Read8 reads the byte at addr.
func (m *Memory) Read8(addr uint32) (uint8, error) {
	if !m.inRange(addr) {
		return 0, errs.InvalidAddress(addr)
	}
	return m.bytes[addr], nil
}

// Read16 reads a little-endian 16-bit value starting at addr.
func (m *Memory) Read16(addr uint32) (uint16, error) {
	if !m.inRange(addr) || !m.inRange(addr+1) {
		return 0, errs.InvalidAddress(addr)
	}
	return uint16(m.bytes[addr]) | uint16(m.bytes[addr+1])<<8, nil
}

// Read32 reads a little-endian 32-bit value starting at addr.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if !m.inRange(addr) || !m.inRange(addr+3) {
		return 0, errs.InvalidAddress(addr)
	}
	return uint32(m.bytes[addr]) |
		uint32(m.bytes[addr+1])<<8 |
		uint32(m.bytes[addr+2])<<16 |
		uint32(m.bytes[addr+3])<<24, nil
}

// Write8 writes a byte at addr. Fails, unchanged, if addr is out of range.
func (m *Memory) Write8(addr uint32, v uint8) error {
	if !m.inRange(addr) {
		return errs.InvalidAddress(addr)
	}
	m.bytes[addr] = v
	return nil
}

// Write16 writes a little-endian 16-bit value. All-or-nothing: if any
// constituent byte is out of range, no byte is written.
func (m *Memory) Write16(addr uint32, v uint16) error {
	if !m.inRange(addr) || !m.inRange(addr+1) {
		return errs.InvalidAddress(addr)
	}
	m.bytes[addr] = uint8(v)
	m.bytes[addr+1] = uint8(v >> 8)
	return nil
}

// Write32 writes a little-endian 32-bit value. All-or-nothing.
func (m *Memory) Write32(addr uint32, v uint32) error {
	if !m.inRange(addr) || !m.inRange(addr+3) {
		return errs.InvalidAddress(addr)
	}
	m.bytes[addr] = uint8(v)
	m.bytes[addr+1] = uint8(v >> 8)
	m.bytes[addr+2] = uint8(v >> 16)
	m.bytes[addr+3] = uint8(v >> 24)
	return nil
}
