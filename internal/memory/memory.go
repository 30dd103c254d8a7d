// Package memory implements the NES's dual bus fabric: the CPU bus (RAM,
// PPU/APU registers, controller ports, cartridge) and the PPU bus (pattern
// tables, nametables, palette RAM).
package memory

import "github.com/golang/glog"

// Memory is the CPU bus: a pure address-decoded multiplexer.
type Memory struct {
	// Internal RAM (2KB, mirrored through $1FFF)
	ram [0x800]uint8

	// PPU registers (mirrored every 8 bytes across $2000-$3FFF)
	ppuRegisters PPUInterface

	// APU and I/O registers
	apuRegisters APUInterface

	// Input system (controller strobe/shift ports)
	inputSystem InputInterface

	// Cartridge
	cartridge CartridgeInterface

	// DMA callback, invoked on a $4014 write so the façade can account
	// for the 513/514 cycle CPU stall; dmaPending latches true on any
	// trigger regardless of whether a callback is wired, and clears the
	// moment it is consumed.
	dmaCallback func(uint8)
	dmaPending  bool

	// Open bus - last value driven on the bus, returned for unmapped or
	// write-only register reads.
	openBusValue uint8
}

// PPUMemory is the PPU bus.
type PPUMemory struct {
	vram       [0x1000]uint8 // 4KB VRAM (nametables)
	paletteRAM [32]uint8     // 32 bytes palette RAM
	cartridge  CartridgeInterface
	mirroring  MirrorMode
}

// MirrorMode represents nametable mirroring mode.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleScreen0
	MirrorSingleScreen1
	MirrorFourScreen
)

// PPUInterface defines the interface for PPU register access.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// PPUDebugPeeker is an optional capability a PPUInterface implementation
// may provide: a register read with no side effects, for debug tooling.
// When absent, Memory.ReadDebug falls back to the open-bus value.
type PPUDebugPeeker interface {
	PeekRegister(address uint16) uint8
}

// APUInterface defines the interface for APU register access.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface defines the interface for controller port access.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface defines the interface for cartridge access.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// New creates a new CPU bus.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	return &Memory{
		ppuRegisters: ppu,
		apuRegisters: apu,
		cartridge:    cart,
	}
}

// SetInputSystem wires the controller ports.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetDMACallback sets the callback invoked on an OAM DMA trigger. When unset,
// Write performs the 256-byte copy itself with no stall accounting.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// ConsumeDMAPending reports whether an OAM DMA was triggered since the last
// call, clearing the latch. The façade calls this once per CPU step to
// decide whether to account the 513/514 cycle stall.
func (m *Memory) ConsumeDMAPending() bool {
	pending := m.dmaPending
	m.dmaPending = false
	return pending
}

// Read reads a byte from the given CPU address, updating the open-bus latch.
func (m *Memory) Read(address uint16) uint8 {
	value := m.decodeRead(address)
	m.openBusValue = value
	return value
}

// ReadDebug reads a byte without triggering any side effect (VBlank clear,
// VRAM pointer advance, controller shift). Used by debug/inspection tooling
// that must not perturb emulation state.
func (m *Memory) ReadDebug(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]
	case address < 0x4000:
		if peeker, ok := m.ppuRegisters.(PPUDebugPeeker); ok {
			return peeker.PeekRegister(0x2000 + (address & 0x0007))
		}
		return m.openBusValue
	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			return m.cartridge.ReadPRG(address)
		}
		return m.openBusValue
	case address >= 0x8000:
		if m.cartridge != nil {
			return m.cartridge.ReadPRG(address)
		}
		return m.openBusValue
	default:
		return m.openBusValue
	}
}

func (m *Memory) decodeRead(address uint16) uint8 {
	switch {
	case address < 0x2000:
		// Internal RAM (mirrored)
		return m.ram[address&0x07FF]

	case address < 0x4000:
		// PPU registers (mirrored every 8 bytes)
		return m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch address {
		case 0x4015:
			return m.apuRegisters.ReadStatus()
		case 0x4016, 0x4017:
			if m.inputSystem != nil {
				return m.inputSystem.Read(address)
			}
			return 0
		default:
			// Write-only APU registers: open bus.
			return m.openBusValue
		}

	case address >= 0x6000 && address < 0x8000:
		// PRG RAM/SRAM
		if m.cartridge != nil {
			return m.cartridge.ReadPRG(address)
		}
		return m.openBusValue

	case address < 0x8000:
		// Cartridge expansion area ($4020-$5FFF): unmapped
		return m.openBusValue

	default:
		// PRG ROM ($8000-$FFFF)
		if m.cartridge != nil {
			return m.cartridge.ReadPRG(address)
		}
		return m.openBusValue
	}
}

// Write writes a byte to the given CPU address.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		m.writeIORegister(address, value)

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}

	case address < 0x8000:
		// Cartridge expansion area ($4020-$5FFF): unmapped, dropped

	default:
		// PRG ROM ($8000-$FFFF): some mappers accept bank-select writes
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

func (m *Memory) writeIORegister(address uint16, value uint8) {
	switch {
	case address == 0x4014:
		m.triggerOAMDMA(value)

	case address == 0x4016:
		if m.inputSystem != nil {
			m.inputSystem.Write(address, value)
		}

	case address >= 0x4000 && address <= 0x4013, address == 0x4015, address == 0x4017:
		m.apuRegisters.WriteRegister(address, value)

	default:
		// $4018-$401F test-mode registers: ignored
	}
}

// triggerOAMDMA latches the pending-stall flag, resets OAMADDR to 0 per the
// real hardware sequence, and performs the 256-byte copy — either via the
// wired callback (which also accounts CPU stall cycles) or immediately.
func (m *Memory) triggerOAMDMA(page uint8) {
	m.dmaPending = true
	m.ppuRegisters.WriteRegister(0x2003, 0)

	if m.dmaCallback != nil {
		m.dmaCallback(page)
		return
	}
	m.performOAMDMA(page)
}

// performOAMDMA copies 256 bytes from CPU page $XX00-$XXFF into OAM via
// repeated $2004 writes.
func (m *Memory) performOAMDMA(page uint8) {
	baseAddress := uint16(page) << 8
	for i := uint16(0); i < 256; i++ {
		value := m.Read(baseAddress + i)
		m.ppuRegisters.WriteRegister(0x2004, value)
	}
}

// Read16PageWrap composes two 8-bit reads with the 6502 indirect-addressing
// page-wrap bug: the high byte is fetched from (addr & 0xFF00) |
// ((addr+1) & 0x00FF) rather than addr+1, so a pointer at the end of a page
// wraps within that page instead of crossing into the next one.
func (m *Memory) Read16PageWrap(addr uint16) uint16 {
	lo := m.Read(addr)
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi := m.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

// NewPPUMemory creates a new PPU bus.
func NewPPUMemory(cart CartridgeInterface, mirroring MirrorMode) *PPUMemory {
	mem := &PPUMemory{
		cartridge: cart,
		mirroring: mirroring,
	}
	// Universal background color slots power up black.
	for i := 0; i < 32; i += 4 {
		mem.paletteRAM[i] = 0x0F
	}
	return mem
}

// Read reads from the 14-bit PPU address space ($0000-$3FFF).
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cartridge.ReadCHR(address)
	case address < 0x3000:
		return pm.readNametable(address)
	case address < 0x3F00:
		return pm.readNametable(address - 0x1000)
	default:
		return pm.readPalette(address)
	}
}

// Write writes to the 14-bit PPU address space ($0000-$3FFF).
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cartridge.WriteCHR(address, value)
	case address < 0x3000:
		pm.writeNametable(address, value)
	case address < 0x3F00:
		pm.writeNametable(address-0x1000, value)
	default:
		pm.writePalette(address, value)
	}
}

func (pm *PPUMemory) readNametable(address uint16) uint8 {
	return pm.vram[pm.getNametableIndex(address)]
}

func (pm *PPUMemory) writeNametable(address uint16, value uint8) {
	pm.vram[pm.getNametableIndex(address)] = value
}

// getNametableIndex maps one of four logical 1KB nametables onto the two
// physical 1KB VRAM pages according to the cartridge's mirroring mode.
func (pm *PPUMemory) getNametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch pm.mirroring {
	case MirrorHorizontal:
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset

	case MirrorVertical:
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset

	case MirrorSingleScreen0:
		return offset

	case MirrorSingleScreen1:
		return 0x400 + offset

	case MirrorFourScreen:
		return uint16(nametable)*0x400 + offset

	default:
		glog.Warningf("ppu bus: unknown mirroring mode %v, defaulting to horizontal", pm.mirroring)
		return offset
	}
}

func (pm *PPUMemory) readPalette(address uint16) uint8 {
	return pm.paletteRAM[paletteIndex(address)]
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	pm.paletteRAM[paletteIndex(address)] = value
}

// paletteIndex folds a $3F00-$3FFF address into a 32-entry palette index,
// mirroring the sprite-half universal-background slots ($3F10/$14/$18/$1C)
// onto their background counterparts.
func paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) & 0x1F
	switch index {
	case 0x10, 0x14, 0x18, 0x1C:
		index &= 0x0F
	}
	return index
}
