package emu

import "testing"

func TestInterleaveROM(t *testing.T) {
	rom, err := InterleaveROM([]byte{0x60, 0x12}, []byte{0xFE, 0x34})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x60, 0xFE, 0x12, 0x34}
	if string(rom) != string(want) {
		t.Errorf("expected % X, got % X", want, rom)
	}
}

func TestInterleaveROM_SizeMismatch(t *testing.T) {
	if _, err := InterleaveROM(make([]byte, 4), make([]byte, 2)); err == nil {
		t.Error("expected error for mismatched halves, got nil")
	}
}

func TestValidateProgramROM_68K(t *testing.T) {
	if err := ValidateProgramROM(HardwareTwinCobra, makeTest68KROM()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateProgramROM_68KBadPC(t *testing.T) {
	rom := makeTest68KROM()
	rom[6] = 0x10 // PC = 0x1000, past the end of a 0x400 ROM
	if err := ValidateProgramROM(HardwareTwinCobra, rom); err == nil {
		t.Error("expected error for PC outside ROM, got nil")
	}

	rom = makeTest68KROM()
	rom[7] = 0x01 // odd PC
	if err := ValidateProgramROM(HardwareFlyingShark, rom); err == nil {
		t.Error("expected error for odd PC, got nil")
	}
}

func TestValidateProgramROM_TooShort(t *testing.T) {
	if err := ValidateProgramROM(HardwareTwinCobra, make([]byte, 4)); err == nil {
		t.Error("expected error for short ROM, got nil")
	}
	if err := ValidateProgramROM(HardwareWardner, nil); err == nil {
		t.Error("expected error for empty Z80 ROM, got nil")
	}
}

func TestValidateProgramROM_TooLarge(t *testing.T) {
	if err := ValidateProgramROM(HardwareTwinCobra, make([]byte, rom68KSize+2)); err == nil {
		t.Error("expected error for oversized 68000 ROM, got nil")
	}
	if err := ValidateProgramROM(HardwareWardner, make([]byte, romZ80Size+1)); err == nil {
		t.Error("expected error for oversized Z80 ROM, got nil")
	}
}

func TestValidateProgramROM_Z80(t *testing.T) {
	if err := ValidateProgramROM(HardwareWardner, makeTestZ80ROM()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateProgramROM_UnknownHardware(t *testing.T) {
	if err := ValidateProgramROM(Hardware(42), makeTest68KROM()); err == nil {
		t.Error("expected error for unknown hardware, got nil")
	}
}
