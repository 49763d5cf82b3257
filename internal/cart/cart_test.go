package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartridge_ROMReadIgnoresBankWrites(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0000] = 0xAB
	c, err := New(rom, "")
	require.NoError(t, err)

	require.Equal(t, byte(0xAB), c.ReadROM(0x0000))
	c.WriteROM(0x2000, 0x01) // bank-select stub: no effect
	require.Equal(t, byte(0xAB), c.ReadROM(0x0000))
}

func TestCartridge_RAMRoundTrip(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	c, err := New(rom, "")
	require.NoError(t, err)

	c.WriteRAM(0xA010, 0x42)
	require.Equal(t, byte(0x42), c.ReadRAM(0xA010))
}

func TestCartridge_PersistsAndReloadsRAM(t *testing.T) {
	dir := t.TempDir()
	romPath := filepath.Join(dir, "game.gb")
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	require.NoError(t, os.WriteFile(romPath, rom, 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	c, err := New(rom, romPath)
	require.NoError(t, err)
	c.WriteRAM(0xA000, 0x99)
	require.NoError(t, c.Close())

	reloaded, err := New(rom, romPath)
	require.NoError(t, err)
	require.Equal(t, byte(0x99), reloaded.ReadRAM(0xA000))
	require.FileExists(t, filepath.Join(dir, "save", "game.save"))
}
