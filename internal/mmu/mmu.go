// Package mmu implements the 16-bit address decoder that fans CPU memory
// accesses out to the cartridge, WRAM, HRAM, PPU, and IO block, and that
// owns the IF/IE interrupt registers.
package mmu

import (
	"github.com/dmgcore/dmgcore/internal/cart"
	"github.com/dmgcore/dmgcore/internal/ioport"
	"github.com/dmgcore/dmgcore/internal/ppu"
)

// Interrupt bit positions within IF/IE.
const (
	IntVBlank = 0
	IntSTAT   = 1
	IntTimer  = 2
	IntSerial = 3
	IntJoypad = 4
)

// Display is the presentation half of the display collaborator contract;
// the PPU pushes pixels directly to it, and the MMU pulls quit/keys once
// per step to fan them to IO and bubble cancellation up to the CPU.
type Display interface {
	ppu.Sink
	PollKeys() ioport.KeyState
	QuitRequested() bool
}

const (
	wramSize = 0x2000
	hramSize = 0x7F
)

// MMU is the single owner of the PPU, IO block, WRAM, HRAM, and the
// cartridge. CPU reads/writes and the per-step peripheral fan-out both
// flow through it.
type MMU struct {
	cart *cart.Cartridge
	ppu  *ppu.PPU
	io   *ioport.IO

	wram [wramSize]byte
	hram [hramSize]byte

	ifReg byte // FF0F, lower 5 bits meaningful
	ie    byte // FFFF

	sb, sc byte // FF01/FF02 serial stubs, never raise an interrupt

	dma       byte
	dmaActive bool
	dmaSrc    uint16
	dmaIndex  int

	display Display
}

// New wires a cartridge and display collaborator into a fresh MMU.
func New(c *cart.Cartridge, display Display) *MMU {
	m := &MMU{cart: c, io: ioport.New(), display: display}
	m.ppu = ppu.New(display)
	return m
}

func (m *MMU) PPU() *ppu.PPU { return m.ppu }
func (m *MMU) IO() *ioport.IO { return m.io }

// ReadByte decodes a CPU address into the region it belongs to (§3).
func (m *MMU) ReadByte(addr uint16) byte {
	switch {
	case addr < 0x8000:
		return m.cart.ReadROM(addr)
	case addr <= 0x9FFF:
		return m.ppu.CPURead(addr)
	case addr <= 0xBFFF:
		return m.cart.ReadRAM(addr)
	case addr <= 0xDFFF:
		return m.wram[addr-0xC000]
	case addr <= 0xFDFF: // echo of C000-DDFF
		return m.wram[addr-0xE000]
	case addr <= 0xFE9F:
		if m.dmaActive {
			return 0xFF
		}
		return m.ppu.CPURead(addr)
	case addr <= 0xFEFF: // prohibited
		return 0xFF
	case addr == 0xFF00:
		return m.io.JOYP()
	case addr == 0xFF01:
		return m.sb
	case addr == 0xFF02:
		return 0x7E | m.sc
	case addr == 0xFF04:
		return m.io.DIV()
	case addr == 0xFF05:
		return m.io.TIMA()
	case addr == 0xFF06:
		return m.io.TMA()
	case addr == 0xFF07:
		return m.io.TAC()
	case addr == 0xFF0F:
		return 0xE0 | (m.ifReg & 0x1F)
	case addr == 0xFF46:
		return m.dma
	case addr == 0xFF50:
		return 0xFF
	case addr >= 0xFF40 && addr <= 0xFF4B:
		return m.ppu.CPURead(addr)
	case addr <= 0xFF7F:
		return 0xFF
	case addr <= 0xFFFE:
		return m.hram[addr-0xFF80]
	default: // 0xFFFF
		return m.ie
	}
}

// ReadWord reads a little-endian 16-bit pair.
func (m *MMU) ReadWord(addr uint16) uint16 {
	lo := uint16(m.ReadByte(addr))
	hi := uint16(m.ReadByte(addr + 1))
	return lo | hi<<8
}

// WriteByte decodes a CPU address and dispatches the write. Writes to the
// prohibited region (FEA0-FEFF) are silently dropped.
func (m *MMU) WriteByte(addr uint16, value byte) {
	switch {
	case addr < 0x8000:
		m.cart.WriteROM(addr, value)
	case addr <= 0x9FFF:
		m.ppu.CPUWrite(addr, value)
	case addr <= 0xBFFF:
		m.cart.WriteRAM(addr, value)
	case addr <= 0xDFFF:
		m.wram[addr-0xC000] = value
	case addr <= 0xFDFF:
		m.wram[addr-0xE000] = value
	case addr <= 0xFE9F:
		if !m.dmaActive {
			m.ppu.CPUWrite(addr, value)
		}
	case addr <= 0xFEFF:
		// prohibited: no-op
	case addr == 0xFF00:
		m.io.WriteJOYP(value)
	case addr == 0xFF01:
		m.sb = value
	case addr == 0xFF02:
		m.sc = value & 0x81
	case addr == 0xFF04:
		m.io.WriteDIV()
	case addr == 0xFF05:
		m.io.WriteTIMA(value)
	case addr == 0xFF06:
		m.io.WriteTMA(value)
	case addr == 0xFF07:
		m.io.WriteTAC(value)
	case addr == 0xFF0F:
		m.ifReg = value & 0x1F
	case addr == 0xFF46:
		m.startDMA(value)
	case addr == 0xFF50:
		// boot ROM disable: no boot ROM is modeled, accept and ignore.
	case addr >= 0xFF40 && addr <= 0xFF4B:
		m.ppu.CPUWrite(addr, value)
	case addr <= 0xFF7F:
		// unmodeled IO: ignored
	case addr <= 0xFFFE:
		m.hram[addr-0xFF80] = value
	default: // 0xFFFF
		m.ie = value
	}
}

// WriteWord writes a little-endian 16-bit pair.
func (m *MMU) WriteWord(addr uint16, value uint16) {
	m.WriteByte(addr, byte(value))
	m.WriteByte(addr+1, byte(value>>8))
}

func (m *MMU) startDMA(value byte) {
	m.dma = value
	m.dmaActive = true
	m.dmaSrc = uint16(value) << 8
	m.dmaIndex = 0
}

// Step advances IO and the PPU by n cycles, steps any in-flight OAM DMA
// transfer, drains the peripherals' pending-interrupt flags into IF
// (clearing each pending flag after copying), and returns whether the
// display collaborator has requested quit.
func (m *MMU) Step(cycles int) bool {
	m.io.Step(cycles)
	m.ppu.Step(cycles)
	m.stepDMA(cycles)

	if m.io.TimerPending {
		m.ifReg |= 1 << IntTimer
		m.io.TimerPending = false
	}
	if m.io.JoypadPending {
		m.ifReg |= 1 << IntJoypad
		m.io.JoypadPending = false
	}
	if m.ppu.VBlankPending {
		m.ifReg |= 1 << IntVBlank
		m.ppu.VBlankPending = false
	}
	if m.ppu.STATPending {
		m.ifReg |= 1 << IntSTAT
		m.ppu.STATPending = false
	}

	m.io.SetKeys(m.display.PollKeys())
	return m.display.QuitRequested()
}

func (m *MMU) stepDMA(cycles int) {
	for i := 0; i < cycles && m.dmaActive; i++ {
		v := m.ReadByte(m.dmaSrc + uint16(m.dmaIndex))
		m.ppu.DirectOAMWrite(0xFE00+uint16(m.dmaIndex), v)
		m.dmaIndex++
		if m.dmaIndex >= 0xA0 {
			m.dmaActive = false
		}
	}
}

// PendingInterrupts returns (IF & IE & 0x1F), the set of sources that are
// both requested and enabled.
func (m *MMU) PendingInterrupts() byte {
	return m.ifReg & m.ie & 0x1F
}

// ClearInterruptFlag clears a single IF bit once its interrupt has been
// serviced. IE is never modified by interrupt service.
func (m *MMU) ClearInterruptFlag(bit uint) {
	m.ifReg &^= 1 << bit
}

// StopReset resets the divider, mirroring a STOP instruction. The timer is
// not frozen; IO keeps advancing on every Step.
func (m *MMU) StopReset() { m.io.StopReset() }
