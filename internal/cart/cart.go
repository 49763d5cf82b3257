// Package cart models the cartridge storage collaborator: a fixed-bank
// ROM/RAM pair loaded from a file and persisted on shutdown.
//
// Bank-switching (MBC1/MBC3/MBC5, ...) is out of scope here; WriteROM is a
// stub that accepts bank-select writes without acting on them, matching a
// single fixed 32 KiB ROM bank pair.
package cart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const ramSize = 0x2000

// Cartridge is a byte-addressable ROM/RAM pair. ROM is read-only to the
// emulated machine (WriteROM is a no-op bank-select stub); RAM is loaded
// from, and persisted to, a save file derived from the ROM path.
type Cartridge struct {
	rom      []byte
	ram      [ramSize]byte
	savePath string

	Header *Header // nil if the image was too small to carry one
}

// New loads rom bytes already read from disk. romPath is used only to derive
// the save file location ("save/<rom-basename>.save"); it may be empty, in
// which case RAM is never persisted.
func New(rom []byte, romPath string) (*Cartridge, error) {
	c := &Cartridge{rom: rom}
	if h, err := ParseHeader(rom); err == nil {
		c.Header = h
	}
	if romPath != "" {
		base := strings.TrimSuffix(filepath.Base(romPath), filepath.Ext(romPath))
		c.savePath = filepath.Join("save", base+".save")
		if err := c.loadRAM(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cartridge) loadRAM() error {
	data, err := os.ReadFile(c.savePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read save file: %w", err)
	}
	copy(c.ram[:], data)
	return nil
}

// ReadROM returns a byte from the flat 0x0000-0x7FFF ROM window.
func (c *Cartridge) ReadROM(addr uint16) byte {
	if int(addr) < len(c.rom) {
		return c.rom[addr]
	}
	return 0xFF
}

// WriteROM is the bank-select stub: a single fixed bank ignores all writes.
func (c *Cartridge) WriteROM(addr uint16, value byte) {}

// ReadRAM reads external cartridge RAM at a 0xA000-based CPU address.
func (c *Cartridge) ReadRAM(addr uint16) byte {
	return c.ram[int(addr-0xA000)%ramSize]
}

// WriteRAM writes external cartridge RAM at a 0xA000-based CPU address.
func (c *Cartridge) WriteRAM(addr uint16, value byte) {
	c.ram[int(addr-0xA000)%ramSize] = value
}

// Close persists cartridge RAM to its save file exactly once. It is a no-op
// when the cartridge was constructed without a ROM path.
func (c *Cartridge) Close() error {
	if c.savePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.savePath), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	if err := os.WriteFile(c.savePath, c.ram[:], 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}
