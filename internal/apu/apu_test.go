package apu

import "testing"

func TestNewDefaultsSampleRate(t *testing.T) {
	a := New()
	if rate := a.GetSampleRate(); rate != 44100 {
		t.Errorf("expected default sample rate 44100, got %d", rate)
	}
}

func TestWriteRegisterStoresValue(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0x3F)
	if got := a.ReadRegister(0x4000); got != 0x3F {
		t.Errorf("expected $4000 to read back 0x3F, got 0x%02X", got)
	}
}

func TestWriteRegisterOutOfRangeIgnored(t *testing.T) {
	a := New()
	a.WriteRegister(0x3FFF, 0xFF)
	a.WriteRegister(0x4018, 0xFF)
	for addr := uint16(0x4000); addr <= 0x4017; addr++ {
		if got := a.ReadRegister(addr); got != 0 {
			t.Errorf("register $%04X should be untouched, got 0x%02X", addr, got)
		}
	}
}

func TestReadRegisterOutOfRangeReturnsZero(t *testing.T) {
	a := New()
	if got := a.ReadRegister(0x3FFF); got != 0 {
		t.Errorf("expected 0 for out-of-range read, got 0x%02X", got)
	}
	if got := a.ReadRegister(0x4018); got != 0 {
		t.Errorf("expected 0 for out-of-range read, got 0x%02X", got)
	}
}

func TestStatusReflectsChannelEnableWrite(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x1F)
	if got := a.ReadStatus(); got&0x1F != 0x1F {
		t.Errorf("expected channel-enable bits 0x1F, got 0x%02X", got)
	}

	a.WriteRegister(0x4015, 0x00)
	if got := a.ReadStatus(); got&0x1F != 0 {
		t.Errorf("expected channel-enable bits cleared, got 0x%02X", got)
	}
}

func TestStatusReadClearsFrameIRQ(t *testing.T) {
	a := New()
	a.frameIRQFlag = true

	if got := a.ReadStatus(); got&0x40 == 0 {
		t.Error("expected frame IRQ flag set on first read")
	}
	if got := a.ReadStatus(); got&0x40 != 0 {
		t.Error("expected frame IRQ flag cleared after read")
	}
}

func TestWriteFrameCounterClearsFrameIRQWhenInhibited(t *testing.T) {
	a := New()
	a.frameIRQFlag = true

	a.WriteRegister(0x4017, 0x40)
	if got := a.ReadStatus(); got&0x40 != 0 {
		t.Error("writing $4017 with bit 6 set should clear the frame IRQ flag")
	}
}

func TestWriteStatusClearsDMCIRQ(t *testing.T) {
	a := New()
	a.dmcIRQFlag = true

	a.WriteRegister(0x4015, 0x00)
	if got := a.ReadStatus(); got&0x80 != 0 {
		t.Error("writing $4015 should clear the DMC IRQ flag")
	}
}

func TestResetClearsRegistersAndFlags(t *testing.T) {
	a := New()
	a.WriteRegister(0x4000, 0xFF)
	a.WriteRegister(0x4015, 0x1F)
	a.frameIRQFlag = true
	a.dmcIRQFlag = true

	a.Reset()

	if got := a.ReadRegister(0x4000); got != 0 {
		t.Errorf("expected register cleared after Reset, got 0x%02X", got)
	}
	if got := a.ReadStatus(); got != 0 {
		t.Errorf("expected status cleared after Reset, got 0x%02X", got)
	}
}

func TestGetSamplesAlwaysEmpty(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x1F)
	a.Step()
	if samples := a.GetSamples(); samples != nil {
		t.Errorf("expected no synthesized samples, got %v", samples)
	}
}

func TestSetSampleRate(t *testing.T) {
	a := New()
	a.SetSampleRate(48000)
	if got := a.GetSampleRate(); got != 48000 {
		t.Errorf("expected sample rate 48000, got %d", got)
	}
}
