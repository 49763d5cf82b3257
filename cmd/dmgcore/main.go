// Command dmgcore runs a DMG ROM, either windowed or headless.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmgcore/dmgcore/internal/cart"
	"github.com/dmgcore/dmgcore/internal/display"
	"github.com/dmgcore/dmgcore/internal/display/ebitendisplay"
	"github.com/dmgcore/dmgcore/internal/emu"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dmgcore",
		Short: "A cycle-paced DMG-class emulator core",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		scale    int
		trace    bool
		headless bool
		frames   int
		outPNG   string
		expect   string
	)

	cmd := &cobra.Command{
		Use:   "run [rom]",
		Short: "Load and run a ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			romPath := args[0]
			rom, err := os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("read rom: %w", err)
			}
			if len(rom) >= 0x150 {
				if h, err := cart.ParseHeader(rom); err == nil {
					log.Printf("ROM: %q type=%s banks=%d ram=%dB", h.Title, h.CartTypeStr, h.ROMBanks, h.RAMSizeBytes)
				}
			}

			if headless {
				return runHeadless(rom, romPath, trace, frames, outPNG, expect)
			}
			return runWindowed(rom, romPath, scale, trace)
		},
	}

	cmd.Flags().IntVar(&scale, "scale", 3, "window scale factor")
	cmd.Flags().BoolVar(&trace, "trace", false, "set the machine's Trace field (no trace output is produced)")
	cmd.Flags().BoolVar(&headless, "headless", false, "run without a window")
	cmd.Flags().IntVar(&frames, "frames", 300, "frames to run in headless mode")
	cmd.Flags().StringVar(&outPNG, "outpng", "", "write the final framebuffer to a PNG at this path")
	cmd.Flags().StringVar(&expect, "expect", "", "fail unless the final framebuffer's CRC32 matches this hex value")
	return cmd
}

func runWindowed(rom []byte, romPath string, scale int, trace bool) error {
	d := ebitendisplay.New("dmgcore", scale)
	m, err := emu.New(rom, romPath, d)
	if err != nil {
		return err
	}
	m.Trace = trace
	defer m.Close()

	go m.Run()
	return d.Run()
}

func runHeadless(rom []byte, romPath string, trace bool, frames int, outPNG, expect string) error {
	d := display.NewHeadless()
	m, err := emu.New(rom, romPath, d)
	if err != nil {
		return err
	}
	m.Trace = trace
	defer m.Close()

	if frames <= 0 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		if m.StepFrame() {
			break
		}
	}

	crc := d.CRC32()
	log.Printf("headless: frames=%d fb_crc32=%08x", frames, crc)

	if outPNG != "" {
		if err := d.SavePNG(outPNG); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	}

	if expect != "" {
		want := strings.TrimPrefix(strings.ToLower(expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}
