package emu

import "hash/crc32"

const (
	romZ80Size       = 0x7000
	workRAMZ80Size   = 0x1000
	spriteRAMZ80Size = 0x1000
	paletteZ80Size   = 0xE00
)

// Wardner I/O ports.
const (
	wardnerPortCoinLatch = 0x5A
	wardnerPortMainLatch = 0x5C
)

// MemZ80 implements z80.Bus for the Wardner main board.
//
// Address map (Z80 view, 16-bit):
//
//	0x0000-0x6FFF  Program ROM
//	0x7000-0x7FFF  Work RAM       (DSP segment 0x7000)
//	0x8000-0x8FFF  Sprite RAM     (DSP segment 0x8000)
//	0xA000-0xADFF  Palette RAM    (DSP segment 0xA000)
//	0xC000-0xC7FF  Shared RAM
//
// I/O ports:
//
//	0x5A  Coin latch (LS259)
//	0x5C  Main latch (LS259)
type MemZ80 struct {
	rom       []byte
	romCRC    uint32
	ram       [workRAMZ80Size]byte
	spriteRAM [spriteRAMZ80Size]byte
	palette   [paletteZ80Size]byte
	shared    *SharedRAM
	mainLatch *Latch259
	coinLatch *Latch259
}

// NewMemZ80 creates the Wardner main bus.
func NewMemZ80(rom []byte, shared *SharedRAM, mainLatch, coinLatch *Latch259) *MemZ80 {
	if len(rom) > romZ80Size {
		rom = rom[:romZ80Size]
	}
	return &MemZ80{
		rom:       rom,
		romCRC:    crc32.ChecksumIEEE(rom),
		shared:    shared,
		mainLatch: mainLatch,
		coinLatch: coinLatch,
	}
}

// Fetch reads an opcode byte during an M1 cycle. There is no M1-specific
// behavior on this board, so this delegates to Read.
func (m *MemZ80) Fetch(addr uint16) uint8 {
	return m.Read(addr)
}

// Read reads a byte from the Z80 address space.
func (m *MemZ80) Read(addr uint16) uint8 {
	switch {
	case addr < romZ80Size:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr < 0x8000:
		return m.ram[addr-0x7000]
	case addr < 0x9000:
		return m.spriteRAM[addr-0x8000]
	case addr >= 0xA000 && addr < 0xA000+paletteZ80Size:
		return m.palette[addr-0xA000]
	case addr >= 0xC000 && addr < 0xC000+sharedRAMSize:
		return m.shared.Read(uint32(addr - 0xC000))
	}
	return 0xFF
}

// Write writes a byte to the Z80 address space.
func (m *MemZ80) Write(addr uint16, val uint8) {
	switch {
	case addr < romZ80Size:
		// ROM, ignore writes
	case addr < 0x8000:
		m.ram[addr-0x7000] = val
	case addr < 0x9000:
		m.spriteRAM[addr-0x8000] = val
	case addr >= 0xA000 && addr < 0xA000+paletteZ80Size:
		m.palette[addr-0xA000] = val
	case addr >= 0xC000 && addr < 0xC000+sharedRAMSize:
		m.shared.Write(uint32(addr-0xC000), val)
	}
}

// In reads from an I/O port. Inputs are not emulated; all ports read as
// idle (0xFF).
func (m *MemZ80) In(port uint16) uint8 {
	return 0xFF
}

// Out writes to an I/O port. Only the low address byte is decoded.
func (m *MemZ80) Out(port uint16, val uint8) {
	switch uint8(port) {
	case wardnerPortCoinLatch:
		m.coinLatch.WriteNibble(val)
	case wardnerPortMainLatch:
		m.mainLatch.WriteNibble(val)
	}
}

// Read8 implements PrimarySpace.
func (m *MemZ80) Read8(addr uint32) uint8 {
	return m.Read(uint16(addr))
}

// Write8 implements PrimarySpace.
func (m *MemZ80) Write8(addr uint32, val uint8) {
	m.Write(uint16(addr), val)
}

// Read16 implements PrimarySpace. The Z80 is little-endian.
func (m *MemZ80) Read16(addr uint32) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Write16 implements PrimarySpace.
func (m *MemZ80) Write16(addr uint32, val uint16) {
	m.Write8(addr, uint8(val))
	m.Write8(addr+1, uint8(val>>8))
}
