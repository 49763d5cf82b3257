// Package emu wires the cartridge, MMU, and CPU into a runnable machine
// and paces real-time execution against the display collaborator.
package emu

import (
	"fmt"
	"time"

	"github.com/dmgcore/dmgcore/internal/cart"
	"github.com/dmgcore/dmgcore/internal/cpu"
	"github.com/dmgcore/dmgcore/internal/mmu"
)

// cyclesPerSecond is the DMG's fixed system clock.
const cyclesPerSecond = 4194304

// cyclesPerFrame is 70224, the dot count of one full 154-line frame.
const cyclesPerFrame = 70224

// Display is the full display collaborator: pixel sink, frame
// presentation, and the input/quit surface the MMU pulls each step.
type Display = mmu.Display

// Machine owns the cartridge, MMU, and CPU for one loaded ROM.
type Machine struct {
	cart *cart.Cartridge
	mmu  *mmu.MMU
	cpu  *cpu.CPU

	Trace bool
}

// New loads rom (and its paired save file, derived from romPath) and
// wires it to a fresh MMU/CPU pair driving display.
func New(rom []byte, romPath string, display Display) (*Machine, error) {
	c, err := cart.New(rom, romPath)
	if err != nil {
		return nil, fmt.Errorf("load cartridge: %w", err)
	}
	m := mmu.New(c, display)
	return &Machine{cart: c, mmu: m, cpu: cpu.New(m)}, nil
}

// Close flushes battery RAM to the save file.
func (m *Machine) Close() error { return m.cart.Close() }

// StepInstruction executes exactly one CPU instruction (servicing an
// interrupt counts as one), advances every peripheral by the consumed
// cycle count, and reports whether the display asked to quit.
func (m *Machine) StepInstruction() bool {
	cycles := m.cpu.Step()
	return m.mmu.Step(cycles)
}

// StepFrame runs instructions until at least one full frame's worth of
// cycles has elapsed, for headless/scripted callers that don't need
// real-time pacing.
func (m *Machine) StepFrame() bool {
	budget := 0
	for budget < cyclesPerFrame {
		cycles := m.cpu.Step()
		budget += cycles
		if m.mmu.Step(cycles) {
			return true
		}
	}
	return false
}

// Run paces instruction execution against the wall clock at the DMG's
// native 4.194304 MHz, sleeping off any surplus each batch, until the
// display collaborator requests quit. While the CPU is in double-speed
// mode (toggled by STOP), each cycle takes half as long, so the sleep
// per cycle is halved to match.
func (m *Machine) Run() {
	const batchCycles = 1024
	budget := 0
	start := time.Now()
	for {
		cycles := m.cpu.Step()
		if m.mmu.Step(cycles) {
			return
		}
		budget += cycles
		if budget >= batchCycles {
			want := time.Duration(budget) * time.Second / cyclesPerSecond
			if m.cpu.DoubleSpeed() {
				want /= 2
			}
			elapsed := time.Since(start)
			if want > elapsed {
				time.Sleep(want - elapsed)
			}
			budget = 0
			start = time.Now()
		}
	}
}

func (m *Machine) Cartridge() *cart.Cartridge { return m.cart }
func (m *Machine) MMU() *mmu.MMU              { return m.mmu }
func (m *Machine) CPU() *cpu.CPU              { return m.cpu }
