package emu

import "testing"

func TestVariantWord_TranslateAllInputs(t *testing.T) {
	for v := 0; v <= 0xFFFF; v++ {
		seg, off := VariantWord.Translate(uint16(v))
		wantSeg := uint32(v&0xE000) << 3
		wantOff := uint32(v&0x1FFF) << 1
		if seg != wantSeg || off != wantOff {
			t.Fatalf("input 0x%04X: expected (0x%05X, 0x%04X), got (0x%05X, 0x%04X)",
				v, wantSeg, wantOff, seg, off)
		}
	}
}

func TestVariantByte_TranslateAllInputs(t *testing.T) {
	for v := 0; v <= 0xFFFF; v++ {
		seg, off := VariantByte.Translate(uint16(v))
		wantSeg := uint32(v & 0xE000)
		if wantSeg == 0x6000 {
			wantSeg = 0x7000
		}
		wantOff := uint32(v&0x07FF) << 1
		if seg != wantSeg || off != wantOff {
			t.Fatalf("input 0x%04X: expected (0x%04X, 0x%04X), got (0x%04X, 0x%04X)",
				v, wantSeg, wantOff, seg, off)
		}
	}
}

func TestVariantByte_PageSixRemap(t *testing.T) {
	seg, off := VariantByte.Translate(0x6000)
	if seg != 0x7000 || off != 0 {
		t.Errorf("expected (0x7000, 0), got (0x%04X, 0x%X)", seg, off)
	}
	// Bit 12 is not decoded, so 0x7000 lands on the same page
	seg, off = VariantByte.Translate(0x7000)
	if seg != 0x7000 || off != 0 {
		t.Errorf("0x7000: expected (0x7000, 0), got (0x%04X, 0x%X)", seg, off)
	}
	// Bits 11-12 are not part of the offset
	_, off = VariantByte.Translate(0x1801)
	if off != 0x0002 {
		t.Errorf("0x1801: expected offset 0x0002, got 0x%04X", off)
	}
}

func TestVariant_Valid(t *testing.T) {
	tests := []struct {
		variant *Variant
		segment uint32
		valid   bool
	}{
		{&VariantWord, 0x30000, true},
		{&VariantWord, 0x40000, true},
		{&VariantWord, 0x50000, true},
		{&VariantWord, 0x00000, false},
		{&VariantWord, 0x60000, false},
		{&VariantWord, 0x70000, false},
		{&VariantByte, 0x7000, true},
		{&VariantByte, 0x8000, true},
		{&VariantByte, 0xA000, true},
		{&VariantByte, 0x6000, false},
		{&VariantByte, 0xC000, false},
		{&VariantByte, 0x0000, false},
	}
	for _, tt := range tests {
		if got := tt.variant.Valid(tt.segment); got != tt.valid {
			t.Errorf("%s segment 0x%05X: expected valid=%t, got %t", tt.variant.Name, tt.segment, tt.valid, got)
		}
	}
}

func TestVariant_ExecuteSegmentIsLowest(t *testing.T) {
	if got := VariantWord.ExecuteSegment(); got != 0x30000 {
		t.Errorf("word: expected 0x30000, got 0x%05X", got)
	}
	if got := VariantByte.ExecuteSegment(); got != 0x7000 {
		t.Errorf("byte: expected 0x7000, got 0x%04X", got)
	}
}
