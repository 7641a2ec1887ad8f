package emu

import (
	"encoding/binary"
	"errors"
)

const (
	dspSerializeVersion = 1
	// DSPSerializeSize is the total bytes needed for DSP bridge serialization.
	// version(1) + intEnable(1) + dspOn(1) + offset(4) + segment(4) +
	// bio(1) + execute(1) + mcuCounter(4) + mainHalted(1)
	DSPSerializeSize = 18
)

// Serialize writes the bridge registers to buf. buf must be at least
// DSPSerializeSize bytes. The processor lines are not stored; Deserialize
// derives them again.
func (b *DSPBridge) Serialize(buf []byte) error {
	if len(buf) < DSPSerializeSize {
		return errors.New("DSP serialize buffer too small")
	}

	offset := 0

	// Version
	buf[offset] = dspSerializeVersion
	offset++

	// Primary-side control lines
	buf[offset] = boolByte(b.intEnable)
	offset++
	buf[offset] = boolByte(b.dspOn)
	offset++

	// Address registers
	binary.LittleEndian.PutUint32(buf[offset:], b.offset)
	offset += 4
	binary.LittleEndian.PutUint32(buf[offset:], b.segment)
	offset += 4

	// Handshake
	buf[offset] = boolByte(b.bio)
	offset++
	buf[offset] = boolByte(b.execute)
	offset++

	// 8741 MCU counter, stored even when the MCU is absent
	counter := int32(mcuResetCounter)
	if b.mcu != nil {
		counter = b.mcu.counter
	}
	binary.LittleEndian.PutUint32(buf[offset:], uint32(counter))
	offset += 4

	// Primary halt, which tells a BIO release apart from a running DSP
	buf[offset] = boolByte(b.mainHalted)
	offset++

	return nil
}

// Deserialize reads the bridge registers from buf and then re-derives the
// processor lines with Reapply. buf must be at least DSPSerializeSize bytes.
func (b *DSPBridge) Deserialize(buf []byte) error {
	if len(buf) < DSPSerializeSize {
		return errors.New("DSP deserialize buffer too small")
	}

	offset := 0

	// Version
	version := buf[offset]
	offset++
	if version > dspSerializeVersion {
		return errors.New("unsupported DSP state version")
	}

	// Primary-side control lines
	b.intEnable = buf[offset] != 0
	offset++
	b.dspOn = buf[offset] != 0
	offset++

	// Address registers
	b.offset = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4
	b.segment = binary.LittleEndian.Uint32(buf[offset:])
	offset += 4

	// Handshake
	b.bio = buf[offset] != 0
	offset++
	b.execute = buf[offset] != 0
	offset++

	// 8741 MCU counter
	counter := int32(binary.LittleEndian.Uint32(buf[offset:]))
	if b.mcu != nil {
		b.mcu.counter = counter
	}
	offset += 4

	// Primary halt
	b.mainHalted = buf[offset] != 0
	offset++

	b.Reapply()
	return nil
}
