// Package palette loads the NES PPU's 64-entry color lookup table from an
// external binary file, or supplies a built-in default so the core can run
// without one.
package palette

import (
	"fmt"
	"io"
	"os"

	"nescore/internal/romerr"
)

// Table maps a 6-bit NES color index to an RGB triple.
type Table [64][3]uint8

// Load reads a 192-byte binary palette file (64 entries of R, G, B).
func Load(path string) (Table, error) {
	var t Table

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, fmt.Errorf("open palette %q: %w", path, romerr.PaletteMissing)
		}
		return t, fmt.Errorf("open palette %q: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() != 192 {
		return t, fmt.Errorf("palette %q is %d bytes, want 192: %w", path, info.Size(), romerr.PaletteWrongSize)
	}

	var buf [192]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return t, fmt.Errorf("palette %q is shorter than 192 bytes: %w", path, romerr.PaletteWrongSize)
	}

	for i := 0; i < 64; i++ {
		t[i][0] = buf[i*3+0]
		t[i][1] = buf[i*3+1]
		t[i][2] = buf[i*3+2]
	}
	return t, nil
}

// Default returns the built-in 2C02 NTSC-ish palette, usable without an
// external palette file.
func Default() Table {
	return defaultTable
}

// defaultTable is the 2C02 palette the core ships with, expressed as
// 6-bit-index -> RGB rather than the packed 0x00RRGGBB form the display
// backend composites from the FrameBuffer.
var defaultTable = Table{
	{0x66, 0x66, 0x66}, {0x00, 0x2A, 0x88}, {0x14, 0x12, 0xA7}, {0x3B, 0x00, 0xA4},
	{0x5C, 0x00, 0x7E}, {0x6E, 0x00, 0x40}, {0x6C, 0x06, 0x00}, {0x56, 0x1D, 0x00},
	{0x33, 0x35, 0x00}, {0x0B, 0x48, 0x00}, {0x00, 0x52, 0x00}, {0x00, 0x4F, 0x08},
	{0x00, 0x40, 0x4D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xAD, 0xAD, 0xAD}, {0x15, 0x5F, 0xD9}, {0x42, 0x40, 0xFF}, {0x75, 0x27, 0xFE},
	{0xA0, 0x1A, 0xCC}, {0xB7, 0x1E, 0x7B}, {0xB5, 0x31, 0x20}, {0x99, 0x4E, 0x00},
	{0x6B, 0x6D, 0x00}, {0x38, 0x87, 0x00}, {0x0C, 0x93, 0x00}, {0x00, 0x8F, 0x32},
	{0x00, 0x7C, 0x8D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0x64, 0xB0, 0xFF}, {0x92, 0x90, 0xFF}, {0xC6, 0x76, 0xFF},
	{0xF3, 0x6A, 0xFF}, {0xFE, 0x6E, 0xCC}, {0xFE, 0x81, 0x70}, {0xEA, 0x9E, 0x22},
	{0xBC, 0xBE, 0x00}, {0x88, 0xD8, 0x00}, {0x5C, 0xE4, 0x30}, {0x45, 0xE0, 0x82},
	{0x48, 0xCD, 0xDE}, {0x4F, 0x4F, 0x4F}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0xC0, 0xDF, 0xFF}, {0xD3, 0xD2, 0xFF}, {0xE8, 0xC8, 0xFF},
	{0xFB, 0xC2, 0xFF}, {0xFE, 0xC4, 0xEA}, {0xFE, 0xCC, 0xC5}, {0xF7, 0xD8, 0xA5},
	{0xE4, 0xE5, 0x94}, {0xCF, 0xF2, 0x9B}, {0xBE, 0xFB, 0xB3}, {0xB8, 0xF8, 0xD8},
	{0xB8, 0xF8, 0xF8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}
