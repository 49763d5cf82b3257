package cpu

import "github.com/dmgcore/dmgcore/internal/register"

// cbTable is the 256-entry CB-prefixed table, built the same way as
// mainTable: the four systematic blocks (rotate/shift, BIT, RES, SET)
// each span 0x40 opcodes and share one handler parameterized by operand.
var cbTable = cbTableBuilder()

func cbTableBuilder() [256]func(*CPU) int {
	var t [256]func(*CPU) int

	shiftOps := [8]func(*CPU, byte) byte{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}

	for op := 0x00; op <= 0x3F; op++ {
		fn := shiftOps[(op>>3)&7]
		r := reg8Order[op&7]
		cycles := 8
		if r == register.RegHL {
			cycles = 16
		}
		t[op] = func(fn func(*CPU, byte) byte, r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(r, fn(c, c.read8(r)))
				return cycles
			}
		}(fn, r, cycles)
	}

	for op := 0x40; op <= 0x7F; op++ {
		b := uint((op >> 3) & 7)
		r := reg8Order[op&7]
		cycles := 8
		if r == register.RegHL {
			cycles = 12
		}
		t[op] = func(b uint, r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.bit(b, c.read8(r))
				return cycles
			}
		}(b, r, cycles)
	}

	for op := 0x80; op <= 0xBF; op++ {
		b := uint((op >> 3) & 7)
		r := reg8Order[op&7]
		cycles := 8
		if r == register.RegHL {
			cycles = 16
		}
		t[op] = func(b uint, r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(r, c.read8(r)&^(1<<b))
				return cycles
			}
		}(b, r, cycles)
	}

	for op := 0xC0; op <= 0xFF; op++ {
		b := uint((op >> 3) & 7)
		r := reg8Order[op&7]
		cycles := 8
		if r == register.RegHL {
			cycles = 16
		}
		t[op] = func(b uint, r register.Reg8, cycles int) func(*CPU) int {
			return func(c *CPU) int {
				c.write8(r, c.read8(r)|1<<b)
				return cycles
			}
		}(b, r, cycles)
	}

	return t
}
