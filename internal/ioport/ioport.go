// Package ioport models the timer/joypad I/O block: DIV/TIMA/TMA/TAC and
// the joypad register. Pending interrupts are exposed as plain booleans
// that the MMU pulls and drains each step — a pull model, not callbacks.
package ioport

// KeyState is an 8-boolean snapshot of the controller, applied through
// IO.SetKeys, which the MMU calls once per step with the display
// collaborator's PollKeys result.
type KeyState struct {
	Start, Select bool
	A, B          bool
	Up, Down      bool
	Left, Right   bool
}

// IO owns the DIV/TIMA/TMA/TAC timer registers and the joypad select
// register, and raises the Timer and Joypad interrupt pins.
type IO struct {
	div  uint16 // internal 16-bit divider; DIV (FF04) reads the upper 8 bits
	tima byte
	tma  byte
	tac  byte

	timaReloadPending bool // TIMA overflowed this step; reload from TMA next step

	joypSelect byte // bits 5-4 as last written to FF00
	keys       KeyState
	lowNibble  byte // last computed active-low lower nibble, for edge detection

	TimerPending   bool
	JoypadPending  bool
}

// New returns IO with the divider and timer registers at their power-on
// values.
func New() *IO {
	io := &IO{lowNibble: 0x0F}
	return io
}

// DIV returns the upper 8 bits of the internal divider (register FF04).
func (io *IO) DIV() byte { return byte(io.div >> 8) }

// WriteDIV resets the internal divider to zero, as any write to FF04 does.
func (io *IO) WriteDIV() {
	oldInput := io.timerInput()
	io.div = 0
	if oldInput && !io.timerInput() {
		io.incrementTIMA()
	}
}

func (io *IO) TIMA() byte        { return io.tima }
func (io *IO) WriteTIMA(v byte)  { io.tima = v; io.timaReloadPending = false }
func (io *IO) TMA() byte         { return io.tma }
func (io *IO) WriteTMA(v byte)   { io.tma = v }
func (io *IO) TAC() byte         { return 0xF8 | io.tac }
func (io *IO) WriteTAC(v byte) {
	oldInput := io.timerInput()
	io.tac = v & 0x07
	if oldInput && !io.timerInput() {
		io.incrementTIMA()
	}
}

// timerInput is the current timer clock input after TAC gating: the
// divider bit selected by TAC's frequency field, ANDed with the enable
// bit.
func (io *IO) timerInput() bool {
	if io.tac&0x04 == 0 {
		return false
	}
	var bit uint
	switch io.tac & 0x03 {
	case 0x00:
		bit = 9 // 4096 Hz
	case 0x01:
		bit = 3 // 262144 Hz
	case 0x02:
		bit = 5 // 65536 Hz
	case 0x03:
		bit = 7 // 16384 Hz
	}
	return (io.div>>bit)&1 != 0
}

func (io *IO) incrementTIMA() {
	if io.tima == 0xFF {
		io.tima = 0x00
		io.timaReloadPending = true
		return
	}
	io.tima++
}

// Step advances the timer by the given number of CPU cycles, one cycle at a
// time. When TIMA overflows, it is reloaded from TMA and the timer
// interrupt is raised on the following cycle (§4.4).
func (io *IO) Step(cycles int) {
	for i := 0; i < cycles; i++ {
		if io.timaReloadPending {
			io.tima = io.tima + io.tma // wrapping_add, matching the source
			io.timaReloadPending = false
			io.TimerPending = true
		}
		oldInput := io.timerInput()
		io.div++
		if oldInput && !io.timerInput() {
			io.incrementTIMA()
		}
	}
}

// StopReset resets the internal divider to zero, as a STOP instruction
// does. It does not freeze the timer: DIV and TIMA keep counting on every
// later Step call.
func (io *IO) StopReset() {
	io.div = 0
}

// JOYP returns register FF00: bits 7-6 read high, bits 5-4 reflect the
// last write, bits 3-0 are active-low per the currently selected group(s).
func (io *IO) JOYP() byte {
	return 0xC0 | (io.joypSelect & 0x30) | io.lowNibble
}

// WriteJOYP updates the group-select bits and re-evaluates the joypad
// interrupt edge.
func (io *IO) WriteJOYP(value byte) {
	io.joypSelect = value & 0x30
	io.recomputeJoypad()
}

// SetKeys applies a fresh KeyState snapshot from the display collaborator
// and raises the joypad interrupt on any 1->0 transition of a selected
// line.
func (io *IO) SetKeys(k KeyState) {
	io.keys = k
	io.recomputeJoypad()
}

func (io *IO) recomputeJoypad() {
	next := byte(0x0F)
	if io.joypSelect&0x10 == 0 { // P14 low selects D-pad
		if io.keys.Right {
			next &^= 0x01
		}
		if io.keys.Left {
			next &^= 0x02
		}
		if io.keys.Up {
			next &^= 0x04
		}
		if io.keys.Down {
			next &^= 0x08
		}
	}
	if io.joypSelect&0x20 == 0 { // P15 low selects buttons
		if io.keys.A {
			next &^= 0x01
		}
		if io.keys.B {
			next &^= 0x02
		}
		if io.keys.Select {
			next &^= 0x04
		}
		if io.keys.Start {
			next &^= 0x08
		}
	}
	falling := io.lowNibble &^ next
	if falling != 0 {
		io.JoypadPending = true
	}
	io.lowNibble = next
}
