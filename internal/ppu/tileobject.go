package ppu

// TileObject is one 4-byte OAM entry. Screen coordinates are offset from
// the stored position by (-8, -16).
type TileObject struct {
	Y, X      byte
	TileIndex byte
	Flags     byte
}

const (
	objFlagPriority = 1 << 7
	objFlagYFlip    = 1 << 6
	objFlagXFlip    = 1 << 5
	objFlagDMGPal   = 1 << 4
)

// Priority reports whether background color ids 1-3 should be drawn over
// this sprite (bit 7).
func (o TileObject) Priority() bool { return o.Flags&objFlagPriority != 0 }

// YFlip reports whether the sprite's tile row is mirrored vertically.
func (o TileObject) YFlip() bool { return o.Flags&objFlagYFlip != 0 }

// XFlip reports whether the sprite's tile row is mirrored horizontally.
func (o TileObject) XFlip() bool { return o.Flags&objFlagXFlip != 0 }

// DMGPalette selects OBP1 when true, OBP0 when false.
func (o TileObject) DMGPalette() bool { return o.Flags&objFlagDMGPal != 0 }

// ScreenY is the sprite's top-left Y in screen coordinates.
func (o TileObject) ScreenY() int { return int(o.Y) - 16 }

// ScreenX is the sprite's top-left X in screen coordinates.
func (o TileObject) ScreenX() int { return int(o.X) - 8 }
