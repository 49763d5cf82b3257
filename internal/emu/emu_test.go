package emu

import (
	"testing"

	"github.com/dmgcore/dmgcore/internal/display"
	"github.com/stretchr/testify/require"
)

func TestStepFrame_RunsOneFrameOfNOPsWithoutQuitting(t *testing.T) {
	rom := make([]byte, 0x8000) // all 0x00 = NOP
	d := display.NewHeadless()
	m, err := New(rom, "", d)
	require.NoError(t, err)
	m.MMU().WriteByte(0xFF40, 0x91) // the PPU starts with the LCD off and presents no frames until it is enabled

	quit := m.StepFrame()
	require.False(t, quit)
	require.GreaterOrEqual(t, d.Frames(), 1)
}

func TestStepFrame_HonorsDisplayQuitRequest(t *testing.T) {
	rom := make([]byte, 0x8000)
	d := display.NewHeadless()
	m, err := New(rom, "", d)
	require.NoError(t, err)
	d.RequestQuit()

	quit := m.StepFrame()
	require.True(t, quit)
}
