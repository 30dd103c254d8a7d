package cartridge

import (
	"errors"
	"testing"

	"nescore/internal/romerr"
)

func TestLoadFromReaderRejectsBadMagic(t *testing.T) {
	header := buildHeader(1, 1, 0, 0, 0)
	header[0] = 'X'
	rom := buildROM(header, 1, 1)

	_, err := LoadFromReader(rom)
	if !errors.Is(err, romerr.InvalidRomHeader) {
		t.Fatalf("got err %v, want romerr.InvalidRomHeader", err)
	}
}

func TestLoadFromReaderRejectsZeroPRG(t *testing.T) {
	header := buildHeader(0, 1, 0, 0, 0)
	rom := buildROM(header, 0, 1)

	_, err := LoadFromReader(rom)
	if !errors.Is(err, romerr.InvalidRomHeader) {
		t.Fatalf("got err %v, want romerr.InvalidRomHeader", err)
	}
}

func TestLoadFromReaderRejectsFourScreenMirroring(t *testing.T) {
	header := buildHeader(1, 1, 0x08, 0, 0)
	rom := buildROM(header, 1, 1)

	_, err := LoadFromReader(rom)
	if !errors.Is(err, romerr.UnsupportedMirroring) {
		t.Fatalf("got err %v, want romerr.UnsupportedMirroring", err)
	}
}

func TestLoadFromReaderRejectsUnsupportedMapper(t *testing.T) {
	// Mapper 1 (MMC1): flags6 high nibble = 0001.
	header := buildHeader(1, 1, 0x10, 0, 0)
	rom := buildROM(header, 1, 1)

	_, err := LoadFromReader(rom)
	if !errors.Is(err, romerr.UnsupportedMapper) {
		t.Fatalf("got err %v, want romerr.UnsupportedMapper", err)
	}
}

func TestLoadFromReaderMirroringModes(t *testing.T) {
	tests := []struct {
		name   string
		flags6 byte
		want   MirrorMode
	}{
		{"horizontal", 0x00, MirrorHorizontal},
		{"vertical", 0x01, MirrorVertical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := buildHeader(1, 1, tt.flags6, 0, 0)
			rom := buildROM(header, 1, 1)

			cart, err := LoadFromReader(rom)
			if err != nil {
				t.Fatalf("LoadFromReader: %v", err)
			}
			if got := cart.GetMirrorMode(); got != tt.want {
				t.Errorf("mirror mode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFromReaderNROM16KMirrored(t *testing.T) {
	header := buildHeader(1, 1, 0, 0, 0)
	rom := buildROM(header, 1, 1)

	cart, err := LoadFromReader(rom)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if got, want := cart.ReadPRG(0x8000), cart.ReadPRG(0xC000); got != want {
		t.Errorf("16KB ROM not mirrored: ReadPRG(0x8000)=%d ReadPRG(0xC000)=%d", got, want)
	}
}

func TestLoadFromReaderNES20MapperNibble(t *testing.T) {
	// NES 2.0 signature: flags7 bits 2-3 == 0b10.
	// mapperID = (flags7&0xF0)|(flags6>>4) | (flags8&0x0F)<<8.
	// flags6=0x00, flags7=0x08 (NES2.0, low mapper nibble 0), flags8=0x00 -> mapper 0.
	header := buildHeader(1, 1, 0x00, 0x08, 0x00)
	rom := buildROM(header, 1, 1)

	cart, err := LoadFromReader(rom)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cart.MapperID() != 0 {
		t.Errorf("MapperID() = %d, want 0", cart.MapperID())
	}
}

func TestLoadFromReaderNES20UnsupportedHighMapper(t *testing.T) {
	// flags8 low nibble nonzero selects a mapper number above CNROM's range.
	header := buildHeader(1, 1, 0x00, 0x08, 0x01)
	rom := buildROM(header, 1, 1)

	_, err := LoadFromReader(rom)
	if !errors.Is(err, romerr.UnsupportedMapper) {
		t.Fatalf("got err %v, want romerr.UnsupportedMapper", err)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/rom/path.nes")
	if !errors.Is(err, romerr.FileMissing) {
		t.Fatalf("got err %v, want romerr.FileMissing", err)
	}
}

func TestLoadFromReaderCHRRAMWhenSizeZero(t *testing.T) {
	header := buildHeader(1, 0, 0, 0, 0)
	rom := buildROM(header, 1, 0)

	cart, err := LoadFromReader(rom)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if !cart.hasCHRRAM {
		t.Error("expected hasCHRRAM true when header CHR size is 0")
	}
	cart.WriteCHR(0x0000, 0x42)
	if got := cart.ReadCHR(0x0000); got != 0x42 {
		t.Errorf("CHR RAM write/read round-trip: got %#x, want 0x42", got)
	}
}
