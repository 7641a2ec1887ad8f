package emu

import (
	"hash/crc32"

	"github.com/user-none/go-chip-m68k"
)

const (
	rom68KSize       = 0x30000
	workRAM68KSize   = 0x4000
	spriteRAM68KSize = 0x1000
	palette68KSize   = 0xE00
	sharedRAMSize    = 0x800
)

// Mem68K implements m68k.Bus for the Twin Cobra / Flying Shark main board.
//
// Address map (68000 view, 24-bit):
//
//	0x000000-0x02FFFF  Program ROM
//	0x030000-0x033FFF  Work RAM       (DSP segment 0x30000)
//	0x040000-0x040FFF  Sprite RAM     (DSP segment 0x40000)
//	0x050000-0x050DFF  Palette RAM    (DSP segment 0x50000)
//	0x078000-0x078003  DIP switches
//	0x078004-0x078009  Player and system inputs
//	0x07800A-0x07800B  Coin latch (LS259)
//	0x07800C-0x07800D  Main latch (LS259)
//	0x07A000-0x07AFFF  Shared RAM, low byte lane only
type Mem68K struct {
	rom       []byte
	romCRC    uint32
	ram       [workRAM68KSize]byte
	spriteRAM [spriteRAM68KSize]byte
	palette   [palette68KSize]byte
	shared    *SharedRAM
	mainLatch *Latch259
	coinLatch *Latch259
}

// NewMem68K creates the main board bus.
func NewMem68K(rom []byte, shared *SharedRAM, mainLatch, coinLatch *Latch259) *Mem68K {
	if len(rom) > rom68KSize {
		rom = rom[:rom68KSize]
	}
	return &Mem68K{
		rom:       rom,
		romCRC:    crc32.ChecksumIEEE(rom),
		shared:    shared,
		mainLatch: mainLatch,
		coinLatch: coinLatch,
	}
}

// Read implements m68k.Bus.
func (b *Mem68K) Read(s m68k.Size, addr uint32) uint32 {
	addr &= 0xFFFFFF // 24-bit address bus

	switch {
	case addr < rom68KSize:
		return readBE(b.rom, addr, s)
	case addr >= 0x030000 && addr < 0x030000+workRAM68KSize:
		return readBE(b.ram[:], addr-0x030000, s)
	case addr >= 0x040000 && addr < 0x040000+spriteRAM68KSize:
		return readBE(b.spriteRAM[:], addr-0x040000, s)
	case addr >= 0x050000 && addr < 0x050000+palette68KSize:
		return readBE(b.palette[:], addr-0x050000, s)
	case addr >= 0x078000 && addr <= 0x078003:
		// DIP switches, all off
		return 0
	case addr >= 0x078004 && addr <= 0x078009:
		// Inputs are active low; nothing pressed
		if s == m68k.Byte && addr&1 == 0 {
			return 0
		}
		return 0xFF
	case addr >= 0x07A000 && addr <= 0x07AFFF:
		// Byte RAM on the low lane: even byte addresses and the upper
		// half of words read as 0.
		val := uint32(b.shared.Read((addr - 0x07A000) >> 1))
		if s == m68k.Byte && addr&1 == 0 {
			return 0
		}
		if s == m68k.Long {
			next := uint32(b.shared.Read((addr + 2 - 0x07A000) >> 1))
			return val<<16 | next
		}
		return val
	}
	return 0
}

// Write implements m68k.Bus.
func (b *Mem68K) Write(s m68k.Size, addr uint32, value uint32) {
	addr &= 0xFFFFFF // 24-bit address bus

	switch {
	case addr < rom68KSize:
		// ROM, ignore writes
	case addr >= 0x030000 && addr < 0x030000+workRAM68KSize:
		writeBE(b.ram[:], addr-0x030000, s, value)
	case addr >= 0x040000 && addr < 0x040000+spriteRAM68KSize:
		writeBE(b.spriteRAM[:], addr-0x040000, s, value)
	case addr >= 0x050000 && addr < 0x050000+palette68KSize:
		writeBE(b.palette[:], addr-0x050000, s, value)
	case addr == 0x07800A || addr == 0x07800B:
		if lowLane(s, addr) {
			b.coinLatch.WriteNibble(uint8(value))
		}
	case addr == 0x07800C || addr == 0x07800D:
		if lowLane(s, addr) {
			b.mainLatch.WriteNibble(uint8(value))
		}
	case addr >= 0x07A000 && addr <= 0x07AFFF:
		offset := (addr - 0x07A000) >> 1
		switch s {
		case m68k.Byte:
			if addr&1 != 0 {
				b.shared.Write16(offset, uint16(value), 0x00FF)
			}
		case m68k.Word:
			b.shared.Write16(offset, uint16(value), 0xFFFF)
		case m68k.Long:
			b.shared.Write16(offset, uint16(value>>16), 0xFFFF)
			b.shared.Write16(offset+1, uint16(value), 0xFFFF)
		}
	}
}

// lowLane reports whether an access drives data bits 0-7: any word or long
// access, or a byte access to an odd address.
func lowLane(s m68k.Size, addr uint32) bool {
	return s != m68k.Byte || addr&1 != 0
}

// Reset implements m68k.Bus. It is driven by the RESET instruction, which
// pulses the reset line of external devices only; RAM keeps its contents
// and nothing on this bus is wired to the line.
func (b *Mem68K) Reset() {}

// Read8 implements PrimarySpace.
func (b *Mem68K) Read8(addr uint32) uint8 {
	return uint8(b.Read(m68k.Byte, addr))
}

// Write8 implements PrimarySpace.
func (b *Mem68K) Write8(addr uint32, val uint8) {
	b.Write(m68k.Byte, addr, uint32(val))
}

// Read16 implements PrimarySpace.
func (b *Mem68K) Read16(addr uint32) uint16 {
	return uint16(b.Read(m68k.Word, addr))
}

// Write16 implements PrimarySpace.
func (b *Mem68K) Write16(addr uint32, val uint16) {
	b.Write(m68k.Word, addr, uint32(val))
}

// readBE reads big-endian data from buf. Accesses past the end read as 0.
func readBE(buf []byte, idx uint32, s m68k.Size) uint32 {
	n := uint32(len(buf))
	switch s {
	case m68k.Byte:
		if idx < n {
			return uint32(buf[idx])
		}
	case m68k.Word:
		if idx+1 < n {
			return uint32(buf[idx])<<8 | uint32(buf[idx+1])
		}
	case m68k.Long:
		if idx+3 < n {
			return uint32(buf[idx])<<24 | uint32(buf[idx+1])<<16 |
				uint32(buf[idx+2])<<8 | uint32(buf[idx+3])
		}
	}
	return 0
}

// writeBE writes big-endian data to buf. Accesses past the end are dropped.
func writeBE(buf []byte, idx uint32, s m68k.Size, value uint32) {
	n := uint32(len(buf))
	switch s {
	case m68k.Byte:
		if idx < n {
			buf[idx] = byte(value)
		}
	case m68k.Word:
		if idx+1 < n {
			buf[idx] = byte(value >> 8)
			buf[idx+1] = byte(value)
		}
	case m68k.Long:
		if idx+3 < n {
			buf[idx] = byte(value >> 24)
			buf[idx+1] = byte(value >> 16)
			buf[idx+2] = byte(value >> 8)
			buf[idx+3] = byte(value)
		}
	}
}
