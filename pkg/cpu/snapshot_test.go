package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotReflectsRegisterWrites(t *testing.T) {
	c := New()
	c.Regs.Set32(EAX, 1)
	c.Regs.Set32(EBX, 2)
	c.Regs.SetESPValue(0x1000)

	got := c.Snapshot()
	want := Snapshot{EAX: 1, EBX: 2, ESP: 0x1000, Eflags: NewEflags().Raw()}
	assert.Equal(t, want, got)
}
