package emu

// AccessWidth is how a bridge data-port access reaches primary memory.
type AccessWidth int

const (
	AccessWord     AccessWidth = iota // one 16-bit access at segment+offset
	AccessBytePair                    // low byte at offset, high byte at offset+1
)

// Variant describes how the DSP address-select port decodes into a primary
// memory address. Boards differ only in these parameters, so the bridge
// itself is shared.
type Variant struct {
	Name string

	// Segments lists the decodable segments, lowest first. The lowest
	// segment is also the one watched for the execute sentinel.
	Segments [3]uint32

	Width AccessWidth

	translate func(data uint16) (segment, offset uint32)
}

// VariantWord is the 68000 boards (Twin Cobra, Flying Shark). The top three
// bits pick a 64KB bank and the low thirteen bits are a word index.
var VariantWord = Variant{
	Name:      "word",
	Segments:  [3]uint32{0x30000, 0x40000, 0x50000},
	Width:     AccessWord,
	translate: translateWord,
}

// VariantByte is the Z80 board (Wardner). The top three bits pick a 4KB
// page and the low eleven bits are a word index into byte memory.
var VariantByte = Variant{
	Name:      "byte",
	Segments:  [3]uint32{0x7000, 0x8000, 0xA000},
	Width:     AccessBytePair,
	translate: translateByte,
}

func translateWord(data uint16) (uint32, uint32) {
	segment := (uint32(data) & 0xE000) << 3
	offset := (uint32(data) & 0x1FFF) << 1
	return segment, offset
}

func translateByte(data uint16) (uint32, uint32) {
	segment := uint32(data) & 0xE000
	// The board's decoder maps page 6 onto page 7.
	if segment == 0x6000 {
		segment = 0x7000
	}
	offset := (uint32(data) & 0x07FF) << 1
	return segment, offset
}

// Translate decodes an address-select port value. Any input is accepted;
// segments outside the decode range are only rejected on access.
func (v *Variant) Translate(data uint16) (segment, offset uint32) {
	return v.translate(data)
}

// Valid reports whether segment is in the decode range.
func (v *Variant) Valid(segment uint32) bool {
	for _, s := range v.Segments {
		if s == segment {
			return true
		}
	}
	return false
}

// ExecuteSegment is the segment whose first cells hold the DSP done marker.
func (v *Variant) ExecuteSegment() uint32 {
	return v.Segments[0]
}
