package cpu

import "github.com/dmgcore/dmgcore/internal/register"

// mainTable is the 256-entry unprefixed opcode table. It is assembled by
// mainTableBuilder so that the handful of genuinely systematic opcode
// blocks (LD r,r'; the ALU grid; INC/DEC r; 16-bit load/inc/dec/add;
// PUSH/POP; RST; the conditional jump/call/ret quartets) are each written
// once and fanned out across their opcode range, instead of 256 near-
// duplicate switch arms.
var mainTable = mainTableBuilder()

var reg8Order = [8]register.Reg8{
	register.RegB, register.RegC, register.RegD, register.RegE,
	register.RegH, register.RegL, register.RegHL, register.RegA,
}

var reg16Order = [4]register.Reg16{
	register.Reg16BC, register.Reg16DE, register.Reg16HL, register.Reg16SP,
}

var reg16StackOrder = [4]register.Reg16Stack{
	register.Reg16StackBC, register.Reg16StackDE, register.Reg16StackHL, register.Reg16StackAF,
}

func mainTableBuilder() [256]func(*CPU) int {
	var t [256]func(*CPU) int
	for i := range t {
		t[i] = illegalOpcode
	}

	// 0x40-0x7F: LD r,r' grid, with 0x76 overridden to HALT below.
	for op := 0x40; op <= 0x7F; op++ {
		dst := reg8Order[(op>>3)&7]
		src := reg8Order[op&7]
		cycles := 4
		if dst == register.RegHL || src == register.RegHL {
			cycles = 8
		}
		t[op] = func(dst, src register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(dst, c.read8(src))
				return cycles
			}
		}(dst, src, cycles)
	}
	t[0x76] = opHalt

	// 0x80-0xBF: ALU A,r'.
	for op := 0x80; op <= 0xBF; op++ {
		aluOp := (op >> 3) & 7
		src := reg8Order[op&7]
		cycles := 4
		if src == register.RegHL {
			cycles = 8
		}
		t[op] = func(aluOp int, src register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.applyALU(aluOp, c.read8(src))
				return cycles
			}
		}(aluOp, src, cycles)
	}

	// LD r,d8 at 0x06 + r*8.
	for i, r := range reg8Order {
		op := 0x06 + i*8
		cycles := 8
		if r == register.RegHL {
			cycles = 12
		}
		t[op] = func(r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(r, c.fetch8())
				return cycles
			}
		}(r, cycles)
	}

	// INC r / DEC r at 0x04+r*8 / 0x05+r*8.
	for i, r := range reg8Order {
		incOp, decOp := 0x04+i*8, 0x05+i*8
		cycles := 4
		if r == register.RegHL {
			cycles = 12
		}
		t[incOp] = func(r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(r, c.inc8(c.read8(r)))
				return cycles
			}
		}(r, cycles)
		t[decOp] = func(r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(r, c.dec8(c.read8(r)))
				return cycles
			}
		}(r, cycles)
	}

	// ALU A,d8 at 0xC6 + op*8.
	for op := 0; op < 8; op++ {
		opcode := 0xC6 + op*8
		t[opcode] = func(aluOp int) func(*CPU) int {
			return func(c *CPU) int {
				c.applyALU(aluOp, c.fetch8())
				return 8
			}
		}(op)
	}

	// 16-bit register group: LD rr,d16 / INC rr / DEC rr / ADD HL,rr.
	for i, rr := range reg16Order {
		ldOp, incOp, decOp, addOp := 0x01+i*16, 0x03+i*16, 0x0B+i*16, 0x09+i*16
		t[ldOp] = func(rr register.Reg16) func(*CPU) int {
			return func(c *CPU) int { c.write16(rr, c.fetch16()); return 12 }
		}(rr)
		t[incOp] = func(rr register.Reg16) func(*CPU) int {
			return func(c *CPU) int { c.write16(rr, c.read16(rr)+1); return 8 }
		}(rr)
		t[decOp] = func(rr register.Reg16) func(*CPU) int {
			return func(c *CPU) int { c.write16(rr, c.read16(rr)-1); return 8 }
		}(rr)
		t[addOp] = func(rr register.Reg16) func(*CPU) int {
			return func(c *CPU) int { c.add16HL(c.read16(rr)); return 8 }
		}(rr)
	}

	// PUSH/POP rr2.
	for i, rr2 := range reg16StackOrder {
		popOp, pushOp := 0xC1+i*16, 0xC5+i*16
		t[popOp] = func(rr2 register.Reg16Stack) func(*CPU) int {
			return func(c *CPU) int { c.pop16Stack(rr2); return 12 }
		}(rr2)
		t[pushOp] = func(rr2 register.Reg16Stack) func(*CPU) int {
			return func(c *CPU) int { c.push16Stack(rr2); return 16 }
		}(rr2)
	}

	// RST n at 0xC7 + n*8.
	for n := 0; n < 8; n++ {
		opcode := 0xC7 + n*8
		target := uint16(n * 8)
		t[opcode] = func(target uint16) func(*CPU) int {
			return func(c *CPU) int {
				c.push16(c.reg.PC)
				c.reg.PC = target
				return 16
			}
		}(target)
	}

	// Conditional JR/JP/CALL/RET quartets.
	for cc := byte(0); cc < 4; cc++ {
		cc := cc
		t[0x20+int(cc)*8] = func(c *CPU) int {
			off := int8(c.fetch8())
			if c.condition(cc) {
				c.reg.PC = uint16(int32(c.reg.PC) + int32(off))
				return 12
			}
			return 8
		}
		t[0xC2+int(cc)*8] = func(c *CPU) int {
			target := c.fetch16()
			if c.condition(cc) {
				c.reg.PC = target
				return 16
			}
			return 12
		}
		t[0xC4+int(cc)*8] = func(c *CPU) int {
			target := c.fetch16()
			if c.condition(cc) {
				c.push16(c.reg.PC)
				c.reg.PC = target
				return 24
			}
			return 12
		}
		t[0xC0+int(cc)*8] = func(c *CPU) int {
			if c.condition(cc) {
				c.reg.PC = c.pop16()
				return 20
			}
			return 8
		}
	}

	installMiscOpcodes(&t)
	return t
}

func illegalOpcode(c *CPU) int { return 4 }

func opHalt(c *CPU) int {
	c.halted = true
	return 4
}

// installMiscOpcodes fills in the opcodes that don't belong to a
// systematic block: control flow, accumulator rotates, flag opcodes, and
// the handful of irregular loads.
func installMiscOpcodes(t *[256]func(*CPU) int) {
	t[0x00] = func(c *CPU) int { return 4 }

	t[0x10] = func(c *CPU) int {
		c.fetch8() // padding byte, conventionally 0x00
		c.bus.StopReset()
		c.doubleSpeed = !c.doubleSpeed
		c.halted = true
		return 4
	}

	t[0x18] = func(c *CPU) int {
		off := int8(c.fetch8())
		c.reg.PC = uint16(int32(c.reg.PC) + int32(off))
		return 12
	}

	t[0xC3] = func(c *CPU) int { c.reg.PC = c.fetch16(); return 16 }
	t[0xC9] = func(c *CPU) int { c.reg.PC = c.pop16(); return 16 }
	t[0xCD] = func(c *CPU) int {
		target := c.fetch16()
		c.push16(c.reg.PC)
		c.reg.PC = target
		return 24
	}
	t[0xD9] = func(c *CPU) int {
		c.reg.PC = c.pop16()
		c.IME = true
		c.eiDelay = 0
		c.diDelay = 0
		return 16
	}
	t[0xE9] = func(c *CPU) int { c.reg.PC = c.reg.HL(); return 4 }

	t[0xF3] = func(c *CPU) int { c.diDelay = 2; c.eiDelay = 0; return 4 }
	t[0xFB] = func(c *CPU) int { c.eiDelay = 2; c.diDelay = 0; return 4 }

	t[0x07] = func(c *CPU) int { c.reg.A = c.rlc(c.reg.A); c.reg.F &^= register.FlagZ; return 4 }
	t[0x0F] = func(c *CPU) int { c.reg.A = c.rrc(c.reg.A); c.reg.F &^= register.FlagZ; return 4 }
	t[0x17] = func(c *CPU) int { c.reg.A = c.rl(c.reg.A); c.reg.F &^= register.FlagZ; return 4 }
	t[0x1F] = func(c *CPU) int { c.reg.A = c.rr(c.reg.A); c.reg.F &^= register.FlagZ; return 4 }

	t[0x27] = func(c *CPU) int { c.daa(); return 4 }
	t[0x2F] = func(c *CPU) int {
		c.reg.A = ^c.reg.A
		c.reg.SetFlags(c.reg.FlagZ(), true, true, c.reg.FlagC())
		return 4
	}
	t[0x37] = func(c *CPU) int {
		c.reg.SetFlags(c.reg.FlagZ(), false, false, true)
		return 4
	}
	t[0x3F] = func(c *CPU) int {
		c.reg.SetFlags(c.reg.FlagZ(), false, false, !c.reg.FlagC())
		return 4
	}

	t[0x08] = func(c *CPU) int {
		addr := c.fetch16()
		c.bus.WriteWord(addr, c.reg.SP)
		return 20
	}
	t[0xE0] = func(c *CPU) int {
		addr := 0xFF00 + uint16(c.fetch8())
		c.bus.WriteByte(addr, c.reg.A)
		return 12
	}
	t[0xF0] = func(c *CPU) int {
		addr := 0xFF00 + uint16(c.fetch8())
		c.reg.A = c.bus.ReadByte(addr)
		return 12
	}
	t[0xE2] = func(c *CPU) int { c.bus.WriteByte(0xFF00+uint16(c.reg.C), c.reg.A); return 8 }
	t[0xF2] = func(c *CPU) int { c.reg.A = c.bus.ReadByte(0xFF00 + uint16(c.reg.C)); return 8 }
	t[0xEA] = func(c *CPU) int { c.bus.WriteByte(c.fetch16(), c.reg.A); return 16 }
	t[0xFA] = func(c *CPU) int { c.reg.A = c.bus.ReadByte(c.fetch16()); return 16 }

	t[0x02] = func(c *CPU) int { c.bus.WriteByte(c.reg.BC(), c.reg.A); return 8 }
	t[0x12] = func(c *CPU) int { c.bus.WriteByte(c.reg.DE(), c.reg.A); return 8 }
	t[0x0A] = func(c *CPU) int { c.reg.A = c.bus.ReadByte(c.reg.BC()); return 8 }
	t[0x1A] = func(c *CPU) int { c.reg.A = c.bus.ReadByte(c.reg.DE()); return 8 }

	t[0x22] = func(c *CPU) int { c.bus.WriteByte(c.reg.HLIncr(), c.reg.A); return 8 }
	t[0x2A] = func(c *CPU) int { c.reg.A = c.bus.ReadByte(c.reg.HLIncr()); return 8 }
	t[0x32] = func(c *CPU) int { c.bus.WriteByte(c.reg.HLDecr(), c.reg.A); return 8 }
	t[0x3A] = func(c *CPU) int { c.reg.A = c.bus.ReadByte(c.reg.HLDecr()); return 8 }

	t[0x36] = func(c *CPU) int { c.bus.WriteByte(c.reg.HL(), c.fetch8()); return 12 }

	t[0xF9] = func(c *CPU) int { c.reg.SP = c.reg.HL(); return 8 }
	t[0xE8] = func(c *CPU) int {
		d8 := c.fetch8()
		result, h, cy := c.addSPSigned(c.reg.SP, d8)
		c.reg.SP = result
		c.reg.SetFlags(false, false, h, cy)
		return 16
	}
	t[0xF8] = func(c *CPU) int {
		d8 := c.fetch8()
		result, h, cy := c.addSPSigned(c.reg.SP, d8)
		c.reg.SetHL(result)
		c.reg.SetFlags(false, false, h, cy)
		return 12
	}
}
