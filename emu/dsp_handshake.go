package emu

import "log"

// Line is a processor input pin driven by the bridge. The scheduler that
// owns the processors decides what asserting it means.
type Line interface {
	SetLine(asserted bool)
}

// LineState is a Line that remembers its level and optionally reports
// every change.
type LineState struct {
	asserted bool
	OnChange func(asserted bool)
}

// SetLine implements Line.
func (l *LineState) SetLine(asserted bool) {
	changed := l.asserted != asserted
	l.asserted = asserted
	if changed && l.OnChange != nil {
		l.OnChange(asserted)
	}
}

// Asserted returns the current level.
func (l *LineState) Asserted() bool {
	return l.asserted
}

type nopLine struct{}

func (nopLine) SetLine(bool) {}

// DSPLines are the processor pins the handshake drives.
type DSPLines struct {
	MainHalt Line // primary CPU HALT
	DSPHalt  Line // TMS32010 HALT
	DSPInt   Line // TMS32010 INT
}

func (l DSPLines) orNop() DSPLines {
	if l.MainHalt == nil {
		l.MainHalt = nopLine{}
	}
	if l.DSPHalt == nil {
		l.DSPHalt = nopLine{}
	}
	if l.DSPInt == nil {
		l.DSPInt = nopLine{}
	}
	return l
}

// HandshakeState names which processor the handshake lets run.
type HandshakeState int

const (
	// StatePrimaryActive: primary running, DSP halted.
	StatePrimaryActive HandshakeState = iota
	// StateCoprocessorActive: DSP running, primary halted.
	StateCoprocessorActive
	// StateStopped: DSP forced off before it released the primary.
	// Both are halted until a BIO release.
	StateStopped
)

func (s HandshakeState) String() string {
	switch s {
	case StatePrimaryActive:
		return "primary"
	case StateCoprocessorActive:
		return "coprocessor"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// State returns the current handshake state.
func (b *DSPBridge) State() HandshakeState {
	switch {
	case !b.mainHalted:
		return StatePrimaryActive
	case !b.dspHalted:
		return StateCoprocessorActive
	}
	return StateStopped
}

// MainHalted reports whether the primary CPU is held.
func (b *DSPBridge) MainHalted() bool { return b.mainHalted }

// DSPHalted reports whether the DSP is held.
func (b *DSPBridge) DSPHalted() bool { return b.dspHalted }

// DSPEnabled returns the DSP-enable control line.
func (b *DSPBridge) DSPEnabled() bool { return b.dspOn }

// BIO returns the DSP's BIO input. true means asserted: the DSP is not
// ready to talk to the primary.
func (b *DSPBridge) BIO() bool { return b.bio }

func (b *DSPBridge) setMainHalt(halted bool) {
	b.mainHalted = halted
	b.lines.MainHalt.SetLine(halted)
}

func (b *DSPBridge) setDSPHalt(halted bool) {
	b.dspHalted = halted
	b.lines.DSPHalt.SetLine(halted)
}

// SetDSPEnable drives the DSP-enable line from the primary side. Enabling
// starts the DSP through its interrupt and halts the primary. Disabling
// stops the DSP but leaves the primary halted; only a BIO release resumes
// it.
//
// A BIO release leaves INT asserted, and the INT line only reports edges.
// Enabling again at the same level therefore lets the DSP continue where
// it was halted; restarting it from its interrupt vector needs a disable
// then enable (INT falling then rising).
func (b *DSPBridge) SetDSPEnable(on bool) {
	b.dspOn = on
	if on {
		if b.trace {
			log.Printf("dsp: turning DSP on and main CPU off")
		}
		// Halt the primary first so the two never run together.
		b.setMainHalt(true)
		b.setDSPHalt(false)
		b.lines.DSPInt.SetLine(true)
		return
	}
	if b.trace {
		log.Printf("dsp: turning DSP off")
	}
	b.lines.DSPInt.SetLine(false)
	b.setDSPHalt(true)
}

// WriteBIO handles the BIO control port. Bit 15 clears BIO. Writing 0
// releases the primary if the done marker was written, then asserts BIO.
func (b *DSPBridge) WriteBIO(val uint16) {
	if b.trace {
		log.Printf("dsp: IO write %04x at port 3", val)
	}
	if val&0x8000 != 0 {
		b.bio = false
	}
	if val == 0 {
		if b.execute {
			if b.trace {
				log.Printf("dsp: turning the main CPU on")
			}
			b.releaseMain()
			b.execute = false
		}
		b.bio = true
	}
}

// releaseMain hands the bus back to the primary. The DSP is halted along
// with it.
func (b *DSPBridge) releaseMain() {
	b.setDSPHalt(true)
	b.setMainHalt(false)
}

// SetIntEnable drives the interrupt-enable control line.
func (b *DSPBridge) SetIntEnable(enabled bool) {
	b.intEnable = enabled
}

// IntEnabled returns the interrupt-enable flag.
func (b *DSPBridge) IntEnabled() bool { return b.intEnable }

// TakeInterrupt consumes the interrupt-enable flag. It returns true if the
// vblank interrupt should be delivered to the primary.
func (b *DSPBridge) TakeInterrupt() bool {
	if !b.intEnable {
		return false
	}
	b.intEnable = false
	return true
}

// Reapply re-derives the processor lines after the raw registers have been
// restored from a save state. It runs the DSP-enable transition with the
// restored flag and then puts back the primary halt level.
func (b *DSPBridge) Reapply() {
	mainHalted := b.mainHalted
	b.SetDSPEnable(b.dspOn)
	if mainHalted {
		b.setMainHalt(true)
	} else {
		b.releaseMain()
	}
}
