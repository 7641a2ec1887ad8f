package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// InterleaveROM combines a byte-split 16-bit ROM pair. The 68000 boards
// fetch the high byte of each word from the even chip and the low byte
// from the odd chip.
func InterleaveROM(even, odd []byte) ([]byte, error) {
	if len(even) != len(odd) {
		return nil, fmt.Errorf("ROM halves differ in size: even=%d odd=%d", len(even), len(odd))
	}
	out := make([]byte, 2*len(even))
	for i := range even {
		out[2*i] = even[i]
		out[2*i+1] = odd[i]
	}
	return out, nil
}

// ValidateProgramROM checks that rom fits the primary CPU's program space
// of hw. For the 68000 it also checks that the reset PC points into the ROM.
func ValidateProgramROM(hw Hardware, rom []byte) error {
	cfg, err := hw.Config()
	if err != nil {
		return err
	}

	switch cfg.MainCPU {
	case MainCPU68000:
		if len(rom) > rom68KSize {
			return fmt.Errorf("ROM too large for %s (%d bytes, max %d)", hw, len(rom), rom68KSize)
		}
		if len(rom) < 8 {
			return fmt.Errorf("ROM too short to contain reset vectors (%d bytes)", len(rom))
		}
		pc := binary.BigEndian.Uint32(rom[4:8])
		if pc&1 != 0 || pc >= uint32(len(rom)) {
			return fmt.Errorf("reset PC %06X outside ROM", pc)
		}
	case MainCPUZ80:
		if len(rom) > romZ80Size {
			return fmt.Errorf("ROM too large for %s (%d bytes, max %d)", hw, len(rom), romZ80Size)
		}
		if len(rom) == 0 {
			return errors.New("empty ROM")
		}
	}
	return nil
}
