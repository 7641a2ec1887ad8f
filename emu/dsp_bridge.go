package emu

import (
	"fmt"
	"log"
)

// DSP I/O port numbers.
const (
	DSPPortAddrSel = 0 // W: segment/offset select
	DSPPortData    = 1 // R/W: primary memory at segment+offset
	DSPPortMCU     = 2 // R/W: 8741 MCU on the bootleg, otherwise unused
	DSPPortBIO     = 3 // W: BIO line control
)

// PrimarySpace is the primary CPU's address space as the bridge sees it.
type PrimarySpace interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, val uint8)
	Read16(addr uint32) uint16
	Write16(addr uint32, val uint16)
}

// DiagnosticKind classifies a bridge diagnostic.
type DiagnosticKind int

const (
	DiagInvalidSegmentRead DiagnosticKind = iota
	DiagInvalidSegmentWrite
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagInvalidSegmentRead:
		return "invalid segment read"
	case DiagInvalidSegmentWrite:
		return "invalid segment write"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic describes a DSP access the board could not decode. It is never
// fatal: reads return 0 and writes are dropped.
type Diagnostic struct {
	Kind  DiagnosticKind
	Addr  uint32 // segment+offset
	Value uint16 // value written, 0 for reads
}

func (d Diagnostic) String() string {
	if d.Kind == DiagInvalidSegmentWrite {
		return fmt.Sprintf("%s: %04x to %08x (port 1)", d.Kind, d.Value, d.Addr)
	}
	return fmt.Sprintf("%s: from %08x (port 1)", d.Kind, d.Addr)
}

// LogDiagnostic is the default diagnostic hook.
func LogDiagnostic(d Diagnostic) {
	log.Printf("dsp: warning: %s", d)
}

// DSPBridge is the DSP side of the board: the I/O ports through which the
// TMS32010 reaches primary memory, and the halt handshake between the two
// processors.
type DSPBridge struct {
	variant *Variant
	space   PrimarySpace
	mcu     *MCU8741 // nil when port 2 is unused
	lines   DSPLines

	segment uint32
	offset  uint32
	execute bool // DSP wrote the done marker; primary released on next BIO 0
	bio     bool // BIO line asserted: DSP not ready for comms

	// Primary-side control lines
	dspOn     bool
	intEnable bool

	// Halt state as last driven onto the lines
	mainHalted bool
	dspHalted  bool

	diag  func(Diagnostic)
	trace bool
}

// NewDSPBridge creates a bridge for the given variant. mcu may be nil.
// The bridge starts in the reset state.
func NewDSPBridge(variant *Variant, space PrimarySpace, mcu *MCU8741, lines DSPLines) *DSPBridge {
	b := &DSPBridge{
		variant: variant,
		space:   space,
		mcu:     mcu,
		lines:   lines.orNop(),
		diag:    LogDiagnostic,
	}
	b.Reset()
	return b
}

// SetDiagnosticHook replaces the diagnostic sink. nil discards diagnostics.
func (b *DSPBridge) SetDiagnosticHook(fn func(Diagnostic)) {
	if fn == nil {
		fn = func(Diagnostic) {}
	}
	b.diag = fn
}

// SetTrace enables logging of every port access.
func (b *DSPBridge) SetTrace(enabled bool) {
	b.trace = enabled
}

// Reset puts the bridge into its power-on state with the primary running.
func (b *DSPBridge) Reset() {
	b.segment = 0
	b.offset = 0
	b.execute = false
	b.bio = false
	b.intEnable = false
	if b.mcu != nil {
		b.mcu.Reset()
	}
	b.SetDSPEnable(false)
	b.setMainHalt(false)
}

// Segment returns the segment register.
func (b *DSPBridge) Segment() uint32 { return b.segment }

// Offset returns the offset register.
func (b *DSPBridge) Offset() uint32 { return b.offset }

// ExecutePending reports whether the done marker has been written.
func (b *DSPBridge) ExecutePending() bool { return b.execute }

// Variant returns the decode parameters.
func (b *DSPBridge) Variant() *Variant { return b.variant }

// In reads a DSP I/O port.
func (b *DSPBridge) In(port uint8) uint16 {
	switch port {
	case DSPPortData:
		return b.ReadData()
	case DSPPortMCU:
		if b.mcu != nil {
			val := b.mcu.Read()
			if b.trace {
				log.Printf("dsp: IO read %04x from 8741 MCU (port 2)", val)
			}
			return val
		}
	}
	return 0
}

// Out writes a DSP I/O port.
func (b *DSPBridge) Out(port uint8, val uint16) {
	switch port {
	case DSPPortAddrSel:
		b.WriteAddrSel(val)
	case DSPPortData:
		b.WriteData(val)
	case DSPPortMCU:
		if b.mcu != nil {
			b.mcu.Write(val)
		}
	case DSPPortBIO:
		b.WriteBIO(val)
	}
}

// WriteAddrSel loads the segment and offset registers. Both are always
// overwritten; validity is only checked on access.
func (b *DSPBridge) WriteAddrSel(val uint16) {
	b.segment, b.offset = b.variant.Translate(val)
	if b.trace {
		log.Printf("dsp: IO write %04x (%08x) at port 0", val, b.segment+b.offset)
	}
}

// ReadData reads primary memory at segment+offset. Undecoded segments
// produce a diagnostic and read as 0.
func (b *DSPBridge) ReadData() uint16 {
	addr := b.segment + b.offset
	if !b.variant.Valid(b.segment) {
		b.diag(Diagnostic{Kind: DiagInvalidSegmentRead, Addr: addr})
		return 0
	}

	var val uint16
	switch b.variant.Width {
	case AccessWord:
		val = b.space.Read16(addr)
	case AccessBytePair:
		val = uint16(b.space.Read8(addr)) | uint16(b.space.Read8(addr+1))<<8
	}
	if b.trace {
		log.Printf("dsp: IO read %04x at %08x (port 1)", val, addr)
	}
	return val
}

// WriteData writes primary memory at segment+offset. A zero written to one
// of the first cells of the lowest segment arms the execute flag; the write
// itself still happens.
func (b *DSPBridge) WriteData(val uint16) {
	addr := b.segment + b.offset

	b.execute = false
	if b.segment == b.variant.ExecuteSegment() && b.offset < 3 && val == 0 {
		b.execute = true
	}

	if !b.variant.Valid(b.segment) {
		b.diag(Diagnostic{Kind: DiagInvalidSegmentWrite, Addr: addr, Value: val})
		return
	}

	switch b.variant.Width {
	case AccessWord:
		b.space.Write16(addr, val)
	case AccessBytePair:
		b.space.Write8(addr, uint8(val))
		b.space.Write8(addr+1, uint8(val>>8))
	}
	if b.trace {
		log.Printf("dsp: IO write %04x at %08x (port 1)", val, addr)
	}
}
