package cartridge

import (
	"bytes"
	"fmt"
)

// TestROMConfig configures a synthetic iNES image for tests.
type TestROMConfig struct {
	PRGSize      uint8 // PRG ROM size in 16KB units
	CHRSize      uint8 // CHR ROM size in 8KB units (0 = CHR RAM)
	MapperID     uint8
	Mirroring    MirrorMode
	HasBattery   bool
	Instructions []uint8
	InitialData  map[uint16]uint8
	ResetVector  uint16
	IRQVector    uint16
	NMIVector    uint16
	CHRData      []uint8
	Description  string
}

// TestROMBuilder provides a fluent interface for building test ROMs.
type TestROMBuilder struct {
	config TestROMConfig
}

// NewTestROMBuilder creates a builder defaulting to a 16KB/8KB NROM image
// whose reset vector points at the start of PRG ROM.
func NewTestROMBuilder() *TestROMBuilder {
	return &TestROMBuilder{
		config: TestROMConfig{
			PRGSize:     1,
			CHRSize:     1,
			Mirroring:   MirrorHorizontal,
			InitialData: make(map[uint16]uint8),
			ResetVector: 0x8000,
			IRQVector:   0x8000,
			NMIVector:   0x8000,
			Description: "generated test ROM",
		},
	}
}

func (b *TestROMBuilder) WithPRGSize(size uint8) *TestROMBuilder {
	b.config.PRGSize = size
	return b
}

func (b *TestROMBuilder) WithCHRSize(size uint8) *TestROMBuilder {
	b.config.CHRSize = size
	return b
}

func (b *TestROMBuilder) WithCHRRAM() *TestROMBuilder {
	b.config.CHRSize = 0
	return b
}

func (b *TestROMBuilder) WithMapper(mapperID uint8) *TestROMBuilder {
	b.config.MapperID = mapperID
	return b
}

func (b *TestROMBuilder) WithMirroring(mirroring MirrorMode) *TestROMBuilder {
	b.config.Mirroring = mirroring
	return b
}

func (b *TestROMBuilder) WithBattery() *TestROMBuilder {
	b.config.HasBattery = true
	return b
}

func (b *TestROMBuilder) WithInstructions(instructions []uint8) *TestROMBuilder {
	b.config.Instructions = append([]uint8(nil), instructions...)
	return b
}

func (b *TestROMBuilder) WithData(address uint16, data []uint8) *TestROMBuilder {
	for i, value := range data {
		b.config.InitialData[address+uint16(i)] = value
	}
	return b
}

func (b *TestROMBuilder) WithResetVector(address uint16) *TestROMBuilder {
	b.config.ResetVector = address
	return b
}

func (b *TestROMBuilder) WithIRQVector(address uint16) *TestROMBuilder {
	b.config.IRQVector = address
	return b
}

func (b *TestROMBuilder) WithNMIVector(address uint16) *TestROMBuilder {
	b.config.NMIVector = address
	return b
}

func (b *TestROMBuilder) WithCHRData(data []uint8) *TestROMBuilder {
	b.config.CHRData = append([]uint8(nil), data...)
	return b
}

func (b *TestROMBuilder) WithDescription(description string) *TestROMBuilder {
	b.config.Description = description
	return b
}

// Build renders the configuration to raw iNES bytes.
func (b *TestROMBuilder) Build() ([]byte, error) {
	return GenerateTestROM(b.config)
}

// BuildCartridge renders and loads the configuration as a Cartridge.
func (b *TestROMBuilder) BuildCartridge() (*Cartridge, error) {
	romData, err := b.Build()
	if err != nil {
		return nil, err
	}
	return LoadFromReader(bytes.NewReader(romData))
}

// GenerateTestROM renders a TestROMConfig to raw iNES bytes.
func GenerateTestROM(config TestROMConfig) ([]byte, error) {
	if config.PRGSize == 0 {
		return nil, fmt.Errorf("PRG ROM size cannot be zero")
	}

	header := make([]byte, 16)
	copy(header[0:4], "NES\x1A")
	header[4] = config.PRGSize
	header[5] = config.CHRSize

	flags6 := uint8(0)
	if config.Mirroring == MirrorVertical {
		flags6 |= 0x01
	}
	if config.HasBattery {
		flags6 |= 0x02
	}
	if config.Mirroring == MirrorFourScreen {
		flags6 |= 0x08
	}
	flags6 |= (config.MapperID & 0x0F) << 4
	header[6] = flags6
	header[7] = config.MapperID & 0xF0

	result := append([]byte{}, header...)
	result = append(result, buildPRGROM(config)...)
	if config.CHRSize > 0 {
		result = append(result, buildCHRROM(config)...)
	}
	return result, nil
}

func buildPRGROM(config TestROMConfig) []byte {
	size := int(config.PRGSize) * 16384
	prg := make([]byte, size)

	copy(prg, config.Instructions)
	for address, value := range config.InitialData {
		if int(address) < size {
			prg[address] = value
		}
	}

	vectorOffset := size - 6
	prg[vectorOffset] = uint8(config.NMIVector & 0xFF)
	prg[vectorOffset+1] = uint8(config.NMIVector >> 8)
	prg[vectorOffset+2] = uint8(config.ResetVector & 0xFF)
	prg[vectorOffset+3] = uint8(config.ResetVector >> 8)
	prg[vectorOffset+4] = uint8(config.IRQVector & 0xFF)
	prg[vectorOffset+5] = uint8(config.IRQVector >> 8)

	return prg
}

func buildCHRROM(config TestROMConfig) []byte {
	size := int(config.CHRSize) * 8192
	chr := make([]byte, size)
	copy(chr, config.CHRData)
	return chr
}
