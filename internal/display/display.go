// Package display holds the framebuffer dimensions and a headless
// implementation of the display collaborator (the mmu.Display contract the
// PPU and MMU push pixels and pull input through), used for scripted runs
// and golden-framebuffer tests.
package display

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"os"

	"github.com/dmgcore/dmgcore/internal/ioport"
)

const (
	Width  = 160
	Height = 144
)

// shadeRGB maps a 2-bit DMG shade (0=lightest) to an RGB triple, the
// classic four-tone green-tinted palette.
var shadeRGB = [4][3]byte{
	{0x9B, 0xBC, 0x0F},
	{0x8B, 0xAC, 0x0F},
	{0x30, 0x62, 0x30},
	{0x0F, 0x38, 0x0F},
}

// Headless is a Display with no window: it accumulates one RGBA
// framebuffer, never requests quit on its own, and reports a fixed key
// state (all released) unless driven externally via SetKeys.
type Headless struct {
	fb     [Width * Height * 4]byte
	frames int
	keys   ioport.KeyState
	quit   bool
}

func NewHeadless() *Headless { return &Headless{} }

func (h *Headless) PresentPixel(x, y int, shade byte) {
	i := (y*Width + x) * 4
	rgb := shadeRGB[shade&3]
	h.fb[i] = rgb[0]
	h.fb[i+1] = rgb[1]
	h.fb[i+2] = rgb[2]
	h.fb[i+3] = 0xFF
}

func (h *Headless) PresentFrame() { h.frames++ }

func (h *Headless) PollKeys() ioport.KeyState { return h.keys }
func (h *Headless) SetKeys(k ioport.KeyState) { h.keys = k }

func (h *Headless) QuitRequested() bool { return h.quit }
func (h *Headless) RequestQuit()        { h.quit = true }

func (h *Headless) Frames() int { return h.frames }

// Framebuffer returns the current RGBA pixel buffer (160*144*4 bytes).
func (h *Headless) Framebuffer() []byte { return h.fb[:] }

// CRC32 checksums the current framebuffer, for golden-image comparisons.
func (h *Headless) CRC32() uint32 { return crc32.ChecksumIEEE(h.fb[:]) }

// SavePNG writes the current framebuffer to path as a PNG.
func (h *Headless) SavePNG(path string) error {
	img := &image.RGBA{
		Pix:    append([]byte(nil), h.fb[:]...),
		Stride: 4 * Width,
		Rect:   image.Rect(0, 0, Width, Height),
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
