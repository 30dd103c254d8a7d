package cartridge

import "testing"

func newTestCNROMCart(chrBanks int) *Cartridge {
	cart := &Cartridge{
		prgROM: make([]uint8, 0x4000),
		chrROM: make([]uint8, chrBanks*0x2000),
	}
	for bank := 0; bank < chrBanks; bank++ {
		for i := 0; i < 0x2000; i++ {
			cart.chrROM[bank*0x2000+i] = byte(bank)
		}
	}
	return cart
}

func TestMapper003CHRBankSwitch(t *testing.T) {
	cart := newTestCNROMCart(4)
	m := NewMapper003(cart)

	for bank := uint8(0); bank < 4; bank++ {
		m.WritePRG(0x8000, bank)
		if got := m.ReadCHR(0x0000); got != bank {
			t.Errorf("bank %d: ReadCHR(0x0000) = %d, want %d", bank, got, bank)
		}
	}
}

func TestMapper003CHRBankWrapsModuloBankCount(t *testing.T) {
	cart := newTestCNROMCart(2)
	m := NewMapper003(cart)

	m.WritePRG(0x8000, 5) // 5 % 2 == 1
	if got := m.ReadCHR(0x0000); got != 1 {
		t.Errorf("ReadCHR(0x0000) = %d, want 1 (5 mod 2)", got)
	}
}

func TestMapper003PRGBehavesLikeNROM(t *testing.T) {
	cart := newTestCNROMCart(1)
	m := NewMapper003(cart)

	m.WritePRG(0x6000, 0x42)
	if got := m.ReadPRG(0x6000); got != 0x42 {
		t.Errorf("ReadPRG(0x6000) = %#x, want 0x42", got)
	}

	cart.prgROM[0] = 0x99
	if got := m.ReadPRG(0x8000); got != 0x99 {
		t.Errorf("ReadPRG(0x8000) = %#x, want 0x99", got)
	}
	if got := m.ReadPRG(0xC000); got != 0x99 {
		t.Errorf("ReadPRG(0xC000) = %#x, want 0x99 (16KB ROM must mirror)", got)
	}
}
