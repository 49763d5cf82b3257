package register

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMatchesPostBootState(t *testing.T) {
	r := New()
	require.Equal(t, byte(0x01), r.A)
	require.Equal(t, byte(0x00), r.F)
	require.Equal(t, byte(0xB0), r.B)
	require.Equal(t, byte(0x13), r.C)
	require.Equal(t, byte(0x00), r.D)
	require.Equal(t, byte(0xD8), r.E)
	require.Equal(t, byte(0x01), r.H)
	require.Equal(t, byte(0x4D), r.L)
	require.Equal(t, uint16(0x0100), r.PC)
	require.Equal(t, uint16(0xFFFE), r.SP)
}

func TestSetAFMasksLowNibble(t *testing.T) {
	r := New()
	for v := 0; v <= 0xFFFF; v += 0x101 {
		r.SetAF(uint16(v))
		require.Zero(t, r.F&0x0F, "F low nibble must stay zero for input %#04x", v)
	}
}

func Test16BitViewsConcatenateHighLow(t *testing.T) {
	r := New()
	r.SetBC(0x1234)
	require.Equal(t, byte(0x12), r.B)
	require.Equal(t, byte(0x34), r.C)
	require.Equal(t, uint16(0x1234), r.BC())
}

func TestHLIncrDecrReturnPreModificationValue(t *testing.T) {
	r := New()
	r.SetHL(0x8000)
	require.Equal(t, uint16(0x8000), r.HLIncr())
	require.Equal(t, uint16(0x8001), r.HL())

	r.SetHL(0x8000)
	require.Equal(t, uint16(0x8000), r.HLDecr())
	require.Equal(t, uint16(0x7FFF), r.HL())
}
