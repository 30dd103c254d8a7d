package cartridge

import "testing"

func TestMapper000PRGRAM(t *testing.T) {
	cart := &Cartridge{prgROM: make([]uint8, 0x4000)}
	m := NewMapper000(cart)

	m.WritePRG(0x6000, 0xAB)
	if got := m.ReadPRG(0x6000); got != 0xAB {
		t.Errorf("ReadPRG(0x6000) = %#x, want 0xAB", got)
	}
}

func TestMapper000ROMWritesIgnored(t *testing.T) {
	cart := &Cartridge{prgROM: make([]uint8, 0x8000)}
	cart.prgROM[0] = 0x11
	m := NewMapper000(cart)

	m.WritePRG(0x8000, 0xFF)
	if got := m.ReadPRG(0x8000); got != 0x11 {
		t.Errorf("write to ROM area mutated it: ReadPRG(0x8000) = %#x, want 0x11", got)
	}
}

func TestMapper000CHRRAMGatedByFlag(t *testing.T) {
	cart := &Cartridge{chrROM: make([]uint8, 0x2000), hasCHRRAM: false}
	m := NewMapper000(cart)

	m.WriteCHR(0x0000, 0x7F)
	if got := m.ReadCHR(0x0000); got != 0 {
		t.Errorf("CHR ROM write accepted without hasCHRRAM: got %#x, want 0", got)
	}

	cart.hasCHRRAM = true
	m.WriteCHR(0x0000, 0x7F)
	if got := m.ReadCHR(0x0000); got != 0x7F {
		t.Errorf("CHR RAM write/read round-trip: got %#x, want 0x7F", got)
	}
}

func TestMapper00032KBDirectMapped(t *testing.T) {
	cart := &Cartridge{prgROM: make([]uint8, 0x8000)}
	cart.prgROM[0] = 0xAA
	cart.prgROM[0x4000] = 0xBB
	m := NewMapper000(cart)

	if got := m.ReadPRG(0x8000); got != 0xAA {
		t.Errorf("ReadPRG(0x8000) = %#x, want 0xAA", got)
	}
	if got := m.ReadPRG(0xC000); got != 0xBB {
		t.Errorf("ReadPRG(0xC000) = %#x, want 0xBB (32KB ROM must not mirror)", got)
	}
}
