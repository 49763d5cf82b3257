// Package ebitendisplay is the windowed Display implementation: an ebiten
// game loop that owns a 160x144 texture the PPU writes into pixel by
// pixel and polls the keyboard once per Update.
package ebitendisplay

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dmgcore/dmgcore/internal/display"
	"github.com/dmgcore/dmgcore/internal/ioport"
)

// Display is an ebiten.Game whose Update/Draw/Layout are driven by
// ebiten.RunGame, and whose PresentPixel/PollKeys satisfy mmu.Display.
type Display struct {
	title string
	scale int

	fb  [display.Width * display.Height * 4]byte
	tex *ebiten.Image

	keys   ioport.KeyState
	quit   bool
	paused bool
}

// New configures the window and returns an unstarted Display; call Run to
// hand control to ebiten's game loop.
func New(title string, scale int) *Display {
	if scale <= 0 {
		scale = 3
	}
	d := &Display{title: title, scale: scale}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	return d
}

// Run blocks until the window is closed.
func (d *Display) Run() error { return ebiten.RunGame(d) }

// PresentPixel writes one pixel into the framebuffer. While paused the
// write is dropped, freezing the displayed frame.
func (d *Display) PresentPixel(x, y int, shade byte) {
	if d.paused {
		return
	}
	i := (y*display.Width + x) * 4
	rgb := shadeRGB[shade&3]
	d.fb[i] = rgb[0]
	d.fb[i+1] = rgb[1]
	d.fb[i+2] = rgb[2]
	d.fb[i+3] = 0xFF
}

func (d *Display) PresentFrame() {}

func (d *Display) PollKeys() ioport.KeyState { return d.keys }
func (d *Display) QuitRequested() bool       { return d.quit }

var shadeRGB = [4][3]byte{
	{0x9B, 0xBC, 0x0F},
	{0x8B, 0xAC, 0x0F},
	{0x30, 0x62, 0x30},
	{0x0F, 0x38, 0x0F},
}

// Update reads the keyboard into a fresh KeyState and checks for a window
// close request.
func (d *Display) Update() error {
	d.keys = ioport.KeyState{
		Right:  ebiten.IsKeyPressed(ebiten.KeyRight),
		Left:   ebiten.IsKeyPressed(ebiten.KeyLeft),
		Up:     ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyDown),
		A:      ebiten.IsKeyPressed(ebiten.KeyZ),
		B:      ebiten.IsKeyPressed(ebiten.KeyX),
		Start:  ebiten.IsKeyPressed(ebiten.KeyEnter),
		Select: ebiten.IsKeyPressed(ebiten.KeyShiftRight),
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.quit = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		d.paused = !d.paused
	}
	return nil
}

func (d *Display) Draw(screen *ebiten.Image) {
	if d.tex == nil {
		d.tex = ebiten.NewImage(display.Width, display.Height)
	}
	d.tex.WritePixels(d.fb[:])
	screen.DrawImage(d.tex, nil)

	if d.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 4, 4)
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f", ebiten.ActualFPS()), 4, 4)
}

func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return display.Width, display.Height
}
