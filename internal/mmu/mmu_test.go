package mmu

import (
	"testing"

	"github.com/dmgcore/dmgcore/internal/cart"
	"github.com/dmgcore/dmgcore/internal/ioport"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	keys ioport.KeyState
	quit bool
}

func (d *fakeDisplay) PresentPixel(x, y int, shade byte) {}
func (d *fakeDisplay) PresentFrame()                     {}
func (d *fakeDisplay) PollKeys() ioport.KeyState         { return d.keys }
func (d *fakeDisplay) QuitRequested() bool               { return d.quit }

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	c, err := cart.New(make([]byte, 0x8000), "")
	require.NoError(t, err)
	return New(c, &fakeDisplay{})
}

func TestWRAMRoundTripAndEchoAliasing(t *testing.T) {
	m := newTestMMU(t)
	m.WriteByte(0xC010, 0x42)
	require.Equal(t, byte(0x42), m.ReadByte(0xC010))
	require.Equal(t, byte(0x42), m.ReadByte(0xE010), "echo region must alias WRAM")

	m.WriteByte(0xE020, 0x7F)
	require.Equal(t, byte(0x7F), m.ReadByte(0xC020), "writes through echo must alias back")
}

func TestHRAMRoundTrip(t *testing.T) {
	m := newTestMMU(t)
	m.WriteByte(0xFF90, 0x11)
	require.Equal(t, byte(0x11), m.ReadByte(0xFF90))
}

func TestProhibitedRegionIsSilentNoOp(t *testing.T) {
	m := newTestMMU(t)
	require.NotPanics(t, func() {
		m.WriteByte(0xFEA0, 0x99)
		_ = m.ReadByte(0xFEA0)
	})
	require.Equal(t, byte(0xFF), m.ReadByte(0xFEA0))
}

func TestInterruptFlagDrainsFromPeripheralsAndClearsSingleBit(t *testing.T) {
	m := newTestMMU(t)
	m.io.TimerPending = true
	m.Step(0)
	require.Equal(t, byte(1<<IntTimer), m.ReadByte(0xFF0F)&0x1F)
	require.NotZero(t, m.ifReg&(1<<IntTimer))

	m.ie = 0xFF
	require.Equal(t, byte(1<<IntTimer), m.PendingInterrupts())

	m.ClearInterruptFlag(IntTimer)
	require.Zero(t, m.PendingInterrupts())
}

func TestOAMDMACopiesFromSourcePage(t *testing.T) {
	m := newTestMMU(t)
	for i := 0; i < 0xA0; i++ {
		m.wram[i] = byte(i + 1)
	}
	m.WriteByte(0xFF46, 0xC0) // source page 0xC000
	// Drive the DMA to completion.
	m.Step(0xA0)

	for i := 0; i < 0xA0; i++ {
		require.Equal(t, byte(i+1), m.ppu.CPURead(0xFE00+uint16(i)))
	}
}

func TestIEReadWrite(t *testing.T) {
	m := newTestMMU(t)
	m.WriteByte(0xFFFF, 0x1F)
	require.Equal(t, byte(0x1F), m.ReadByte(0xFFFF))
}
