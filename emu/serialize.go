package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/user-none/go-chip-m68k"
	"github.com/user-none/go-chip-z80"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eMTCState\x00\x00\x00"
	stateHeaderSize = 22 // magic(12) + version(2) + romCRC(4) + dataCRC(4)
)

// Fixed serialization sizes for inline components
const (
	latchSerializeSize     = 2  // mainLatch + coinLatch
	coinSerializeSize      = 10 // counts(8) + levels(2)
	boardBaseSerializeSize = 10 // hardware(1) + z80IntPending(1) + frame(8)
)

// boolByte converts a bool to a uint8 (0 or 1).
func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// cpuSerializeSize returns the size of the primary core state.
func (b *Board) cpuSerializeSize() int {
	if b.config.MainCPU == MainCPUZ80 {
		return z80.SerializeSize
	}
	return m68k.SerializeSize
}

// memorySerializeSize returns the size of all board RAM.
func (b *Board) memorySerializeSize() int {
	if b.config.MainCPU == MainCPUZ80 {
		return workRAMZ80Size + spriteRAMZ80Size + paletteZ80Size + sharedRAMSize
	}
	return workRAM68KSize + spriteRAM68KSize + palette68KSize + sharedRAMSize
}

// SerializeSize returns the total size in bytes needed for a save state.
func (b *Board) SerializeSize() int {
	return stateHeaderSize +
		boardBaseSerializeSize +
		b.cpuSerializeSize() +
		b.memorySerializeSize() +
		latchSerializeSize +
		coinSerializeSize +
		DSPSerializeSize
}

// Serialize creates a save state and returns it as a byte slice.
func (b *Board) Serialize() ([]byte, error) {
	data := make([]byte, b.SerializeSize())

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], b.romCRC)

	offset := stateHeaderSize

	// Board inline state
	offset = b.serializeBase(data, offset)

	// Primary CPU
	var err error
	switch b.config.MainCPU {
	case MainCPU68000:
		err = b.m68k.Serialize(data[offset:])
	case MainCPUZ80:
		err = b.z80.Serialize(data[offset:])
	}
	if err != nil {
		return nil, err
	}
	offset += b.cpuSerializeSize()

	// RAM
	offset = b.serializeMemory(data, offset)

	// Latches and coin counters
	offset = b.serializeLatches(data, offset)

	// DSP bridge
	if err := b.dsp.Serialize(data[offset:]); err != nil {
		return nil, err
	}

	// Calculate and write data CRC32 (over everything after header)
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores board state from a save state byte slice. The
// processor lines are derived again from the restored DSP registers.
func (b *Board) Deserialize(data []byte) error {
	if err := b.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize

	// Board inline state
	offset = b.deserializeBase(data, offset)

	// Primary CPU
	var err error
	switch b.config.MainCPU {
	case MainCPU68000:
		err = b.m68k.Deserialize(data[offset:])
	case MainCPUZ80:
		err = b.z80.Deserialize(data[offset:])
	}
	if err != nil {
		return err
	}
	offset += b.cpuSerializeSize()

	// RAM
	offset = b.deserializeMemory(data, offset)

	// Latches and coin counters
	offset = b.deserializeLatches(data, offset)

	// DSP bridge, which re-derives the halt and INT lines
	return b.dsp.Deserialize(data[offset:])
}

// VerifyState checks if a save state is valid without loading it.
func (b *Board) VerifyState(data []byte) error {
	expectedSize := b.SerializeSize()
	if len(data) < expectedSize {
		return errors.New("save state too short")
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	romCRC := binary.LittleEndian.Uint32(data[14:18])
	if romCRC != b.romCRC {
		return errors.New("save state is for a different ROM")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	if hw := Hardware(data[stateHeaderSize]); hw != b.hw {
		return fmt.Errorf("save state is for %s, board is %s", hw, b.hw)
	}

	return nil
}

// serializeBase writes Board inline state to the data buffer.
func (b *Board) serializeBase(data []byte, offset int) int {
	data[offset] = uint8(b.hw)
	offset++
	data[offset] = boolByte(b.z80IntPending)
	offset++
	binary.LittleEndian.PutUint64(data[offset:], b.frame)
	offset += 8
	return offset
}

// deserializeBase reads Board inline state from the data buffer. The
// hardware byte was checked by VerifyState.
func (b *Board) deserializeBase(data []byte, offset int) int {
	offset++
	b.z80IntPending = data[offset] != 0
	offset++
	b.frame = binary.LittleEndian.Uint64(data[offset:])
	offset += 8
	return offset
}

// boardRAM returns the RAM blocks in save state order.
func (b *Board) boardRAM() [][]byte {
	if b.mem68k != nil {
		return [][]byte{b.mem68k.ram[:], b.mem68k.spriteRAM[:], b.mem68k.palette[:], b.shared.data}
	}
	return [][]byte{b.memZ80.ram[:], b.memZ80.spriteRAM[:], b.memZ80.palette[:], b.shared.data}
}

// serializeMemory writes all board RAM to the data buffer.
func (b *Board) serializeMemory(data []byte, offset int) int {
	for _, ram := range b.boardRAM() {
		copy(data[offset:], ram)
		offset += len(ram)
	}
	return offset
}

// deserializeMemory reads all board RAM from the data buffer.
func (b *Board) deserializeMemory(data []byte, offset int) int {
	for _, ram := range b.boardRAM() {
		copy(ram, data[offset:offset+len(ram)])
		offset += len(ram)
	}
	return offset
}

// serializeLatches writes the latch outputs and coin counters.
func (b *Board) serializeLatches(data []byte, offset int) int {
	data[offset] = b.mainLatch.Value()
	offset++
	data[offset] = b.coinLatch.Value()
	offset++

	for i := range b.coins.Counts {
		binary.LittleEndian.PutUint32(data[offset:], b.coins.Counts[i])
		offset += 4
	}
	for i := range b.coins.level {
		data[offset] = boolByte(b.coins.level[i])
		offset++
	}
	return offset
}

// deserializeLatches reads the latch outputs and coin counters. Latch
// outputs are restored without driving their lines.
func (b *Board) deserializeLatches(data []byte, offset int) int {
	b.mainLatch.Restore(data[offset])
	offset++
	b.coinLatch.Restore(data[offset])
	offset++

	for i := range b.coins.Counts {
		b.coins.Counts[i] = binary.LittleEndian.Uint32(data[offset:])
		offset += 4
	}
	for i := range b.coins.level {
		b.coins.level[i] = data[offset] != 0
		offset++
	}
	return offset
}
