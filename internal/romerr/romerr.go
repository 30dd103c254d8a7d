// Package romerr defines sentinel errors shared across cartridge loading,
// palette loading, and core execution so callers can distinguish failure
// kinds with errors.Is instead of matching strings.
package romerr

import "errors"

var (
	// FileMissing indicates a ROM file could not be opened.
	FileMissing = errors.New("file missing")

	// InvalidRomHeader indicates the iNES/NES 2.0 magic number or a
	// required header field failed validation.
	InvalidRomHeader = errors.New("invalid rom header")

	// UnsupportedMirroring indicates the cartridge requests a mirroring
	// mode this core does not implement (four-screen).
	UnsupportedMirroring = errors.New("unsupported mirroring mode")

	// UnsupportedMapper indicates the cartridge's mapper ID is not NROM
	// (0) or CNROM (3).
	UnsupportedMapper = errors.New("unsupported mapper")

	// PaletteMissing indicates a palette file could not be opened.
	PaletteMissing = errors.New("palette missing")

	// PaletteWrongSize indicates a palette file was not exactly 192
	// bytes (64 entries * 3 bytes).
	PaletteWrongSize = errors.New("palette wrong size")

	// CPUHalted indicates the CPU executed a JAM (KIL/HLT) opcode and
	// cannot continue without a reset.
	CPUHalted = errors.New("cpu halted")
)
