// Package register implements the SM83 register file: eight 8-bit cells
// and the 16-bit PC/SP pair, with the AF/BC/DE/HL 16-bit views and the four
// flag bits packed into F's high nibble.
package register

// Flag bit positions within F.
const (
	FlagZ byte = 1 << 7 // zero
	FlagN byte = 1 << 6 // subtract
	FlagH byte = 1 << 5 // half-carry
	FlagC byte = 1 << 4 // carry
)

// Registers holds the eight 8-bit cells and the two 16-bit cells. F's low
// nibble is always zero; every write path that targets F or AF masks it.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	SP, PC uint16
}

// New returns the registers in their post-boot-ROM DMG state.
func New() *Registers {
	r := &Registers{}
	r.Reset()
	return r
}

// Reset restores the post-boot-ROM DMG state (§3 of the design).
func (r *Registers) Reset() {
	r.A, r.F = 0x01, 0x00
	r.B, r.C = 0xB0, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.PC = 0x0100
	r.SP = 0xFFFE
}

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// SetAF masks the low nibble of F to zero, preserving the invariant that
// F's four low bits never carry data.
func (r *Registers) SetAF(v uint16) {
	r.A = byte(v >> 8)
	r.F = byte(v) & 0xF0
}

func (r *Registers) BC() uint16     { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) SetBC(v uint16) { r.B = byte(v >> 8); r.C = byte(v) }
func (r *Registers) DE() uint16     { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) SetDE(v uint16) { r.D = byte(v >> 8); r.E = byte(v) }
func (r *Registers) HL() uint16     { return uint16(r.H)<<8 | uint16(r.L) }
func (r *Registers) SetHL(v uint16) { r.H = byte(v >> 8); r.L = byte(v) }

// HLIncr returns the pre-modification value of HL and then increments HL
// ("HL+" in LD (HL+),A / LD A,(HL+)).
func (r *Registers) HLIncr() uint16 {
	v := r.HL()
	r.SetHL(v + 1)
	return v
}

// HLDecr returns the pre-modification value of HL and then decrements HL
// ("HL-" in LD (HL-),A / LD A,(HL-)).
func (r *Registers) HLDecr() uint16 {
	v := r.HL()
	r.SetHL(v - 1)
	return v
}

func (r *Registers) FlagZ() bool { return r.F&FlagZ != 0 }
func (r *Registers) FlagN() bool { return r.F&FlagN != 0 }
func (r *Registers) FlagH() bool { return r.F&FlagH != 0 }
func (r *Registers) FlagC() bool { return r.F&FlagC != 0 }

// SetFlags packs z, n, h, c into F, leaving the low nibble zero.
func (r *Registers) SetFlags(z, n, h, c bool) {
	var f byte
	if z {
		f |= FlagZ
	}
	if n {
		f |= FlagN
	}
	if h {
		f |= FlagH
	}
	if c {
		f |= FlagC
	}
	r.F = f
}

// SetFlagC sets or clears only the carry flag, leaving the others intact.
func (r *Registers) SetFlagC(c bool) {
	if c {
		r.F |= FlagC
	} else {
		r.F &^= FlagC
	}
}

// Reg8 names the eight operand slots used by the main and CB opcode tables;
// RegHL is the (HL) pseudo-register.
type Reg8 byte

const (
	RegB Reg8 = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHL
	RegA
)

// Reg16 names the four RR operand slots used by 16-bit load/arithmetic
// instructions that address BC/DE/HL/SP (as opposed to BC/DE/HL/AF for
// PUSH/POP).
type Reg16 byte

const (
	Reg16BC Reg16 = iota
	Reg16DE
	Reg16HL
	Reg16SP
)

// Reg16Stack names the four RR operand slots used by PUSH/POP.
type Reg16Stack byte

const (
	Reg16StackBC Reg16Stack = iota
	Reg16StackDE
	Reg16StackHL
	Reg16StackAF
)
