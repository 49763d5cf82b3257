// Package cpu implements the SM83 instruction interpreter: a tagged
// opcode table over a single generic executor per instruction shape,
// rather than 256 hand-duplicated switch arms, plus interrupt servicing
// and the EI/HALT/STOP timing quirks.
package cpu

import "github.com/dmgcore/dmgcore/internal/register"

// Bus is everything the CPU needs from its memory-mapped environment:
// byte/word access and the interrupt controller's pending/clear surface.
type Bus interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, value byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
	PendingInterrupts() byte
	ClearInterruptFlag(bit uint)
	StopReset()
}

// Interrupt vector addresses, indexed by IF/IE bit position.
var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// CPU couples the register file to a Bus and runs one instruction per
// Step call.
type CPU struct {
	reg *register.Registers
	bus Bus

	IME         bool
	eiDelay     int // instructions remaining until EI's IME=true takes effect; 0 = inactive
	diDelay     int // instructions remaining until DI's IME=false takes effect; 0 = inactive
	halted      bool
	doubleSpeed bool
}

// New returns a CPU with registers at their post-boot-ROM state (§3).
func New(bus Bus) *CPU {
	return &CPU{reg: register.New(), bus: bus}
}

func (c *CPU) Registers() *register.Registers { return c.reg }
func (c *CPU) Halted() bool                   { return c.halted }
func (c *CPU) DoubleSpeed() bool              { return c.doubleSpeed }

func (c *CPU) fetch8() byte {
	v := c.bus.ReadByte(c.reg.PC)
	c.reg.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.bus.ReadWord(c.reg.PC)
	c.reg.PC += 2
	return v
}

func (c *CPU) push16(v uint16) {
	c.reg.SP -= 2
	c.bus.WriteWord(c.reg.SP, v)
}

func (c *CPU) pop16() uint16 {
	v := c.bus.ReadWord(c.reg.SP)
	c.reg.SP += 2
	return v
}

// read8 fetches the value of one of the eight Reg8 operand slots,
// dereferencing (HL) through the bus for RegHL.
func (c *CPU) read8(r register.Reg8) byte {
	switch r {
	case register.RegB:
		return c.reg.B
	case register.RegC:
		return c.reg.C
	case register.RegD:
		return c.reg.D
	case register.RegE:
		return c.reg.E
	case register.RegH:
		return c.reg.H
	case register.RegL:
		return c.reg.L
	case register.RegHL:
		return c.bus.ReadByte(c.reg.HL())
	default:
		return c.reg.A
	}
}

func (c *CPU) write8(r register.Reg8, v byte) {
	switch r {
	case register.RegB:
		c.reg.B = v
	case register.RegC:
		c.reg.C = v
	case register.RegD:
		c.reg.D = v
	case register.RegE:
		c.reg.E = v
	case register.RegH:
		c.reg.H = v
	case register.RegL:
		c.reg.L = v
	case register.RegHL:
		c.bus.WriteByte(c.reg.HL(), v)
	default:
		c.reg.A = v
	}
}

func (c *CPU) read16(r register.Reg16) uint16 {
	switch r {
	case register.Reg16BC:
		return c.reg.BC()
	case register.Reg16DE:
		return c.reg.DE()
	case register.Reg16HL:
		return c.reg.HL()
	default:
		return c.reg.SP
	}
}

func (c *CPU) write16(r register.Reg16, v uint16) {
	switch r {
	case register.Reg16BC:
		c.reg.SetBC(v)
	case register.Reg16DE:
		c.reg.SetDE(v)
	case register.Reg16HL:
		c.reg.SetHL(v)
	default:
		c.reg.SP = v
	}
}

func (c *CPU) push16Stack(r register.Reg16Stack) {
	switch r {
	case register.Reg16StackBC:
		c.push16(c.reg.BC())
	case register.Reg16StackDE:
		c.push16(c.reg.DE())
	case register.Reg16StackHL:
		c.push16(c.reg.HL())
	default:
		c.push16(c.reg.AF())
	}
}

func (c *CPU) pop16Stack(r register.Reg16Stack) {
	v := c.pop16()
	switch r {
	case register.Reg16StackBC:
		c.reg.SetBC(v)
	case register.Reg16StackDE:
		c.reg.SetDE(v)
	case register.Reg16StackHL:
		c.reg.SetHL(v)
	default:
		c.reg.SetAF(v)
	}
}

func (c *CPU) condition(cc byte) bool {
	switch cc {
	case 0:
		return !c.reg.FlagZ()
	case 1:
		return c.reg.FlagZ()
	case 2:
		return !c.reg.FlagC()
	default:
		return c.reg.FlagC()
	}
}

// Step runs the EI/DI-delay ticks, services a pending interrupt if IME
// allows it, wakes from HALT if needed, and otherwise executes one
// instruction. It returns the number of cycles consumed.
func (c *CPU) Step() int {
	if c.eiDelay > 0 {
		c.eiDelay--
		if c.eiDelay == 0 {
			c.IME = true
		}
	}
	if c.diDelay > 0 {
		c.diDelay--
		if c.diDelay == 0 {
			c.IME = false
		}
	}

	if c.serviceInterrupt() {
		return 20
	}

	if c.halted {
		if c.bus.PendingInterrupts() != 0 {
			c.halted = false
		} else {
			return 4
		}
	}

	opcode := c.fetch8()
	if opcode == 0xCB {
		return cbTable[c.fetch8()](c)
	}
	return mainTable[opcode](c)
}

// serviceInterrupt pushes PC and jumps to the lowest-numbered pending,
// enabled interrupt's vector, clearing only that IF bit (IE is never
// touched by service, and every other pending bit is left set).
func (c *CPU) serviceInterrupt() bool {
	if !c.IME {
		return false
	}
	pending := c.bus.PendingInterrupts()
	if pending == 0 {
		return false
	}
	var bit uint
	for bit = 0; bit < 5; bit++ {
		if pending&(1<<bit) != 0 {
			break
		}
	}
	c.bus.ClearInterruptFlag(bit)
	c.IME = false
	c.eiDelay = 0
	c.diDelay = 0
	c.halted = false
	c.push16(c.reg.PC)
	c.reg.PC = vectors[bit]
	return true
}
