package cartridge

import "bytes"

// buildHeader assembles a 16-byte iNES/NES 2.0 header for tests.
func buildHeader(prgBanks, chrBanks, flags6, flags7, flags8 byte) []byte {
	h := make([]byte, 16)
	copy(h[0:4], "NES\x1a")
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	h[8] = flags8
	return h
}

// buildROM concatenates a header with filler PRG/CHR data, byte i in each
// region set to i mod 256 so tests can assert exact offsets round-trip.
func buildROM(header []byte, prgBanks, chrBanks int) *bytes.Buffer {
	buf := bytes.NewBuffer(nil)
	buf.Write(header)
	prg := make([]byte, prgBanks*16384)
	for i := range prg {
		prg[i] = byte(i)
	}
	buf.Write(prg)
	chr := make([]byte, chrBanks*8192)
	for i := range chr {
		chr[i] = byte(i)
	}
	buf.Write(chr)
	return buf
}
