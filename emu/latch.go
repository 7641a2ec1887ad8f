package emu

// Latch259 is an 8-bit addressable latch (74LS259). The primary CPU writes
// a nibble: bits 1-3 select the output, bit 0 is its new level. Each
// output can drive a line.
type Latch259 struct {
	q   uint8
	out [8]func(bool)
}

// Connect attaches fn to output bit.
func (l *Latch259) Connect(bit uint8, fn func(bool)) {
	l.out[bit&7] = fn
}

// WriteNibble decodes a primary-side write.
func (l *Latch259) WriteNibble(data uint8) {
	l.WriteBit((data>>1)&7, data&1 != 0)
}

// WriteBit sets one output and forwards it. Outputs are forwarded on every
// write, not only on change, so one-shot lines can be re-armed by writing
// the same level again.
func (l *Latch259) WriteBit(bit uint8, state bool) {
	bit &= 7
	if state {
		l.q |= 1 << bit
	} else {
		l.q &^= 1 << bit
	}
	if fn := l.out[bit]; fn != nil {
		fn(state)
	}
}

// Q returns the level of one output.
func (l *Latch259) Q(bit uint8) bool {
	return l.q&(1<<(bit&7)) != 0
}

// Value returns all eight outputs.
func (l *Latch259) Value() uint8 { return l.q }

// Restore sets all outputs without forwarding them.
func (l *Latch259) Restore(q uint8) { l.q = q }

// Reset clears every output without forwarding. Devices behind the latch
// are reset by the board itself.
func (l *Latch259) Reset() {
	l.q = 0
}

// Main latch outputs.
const (
	mainLatchDSPEnable = 0
	mainLatchIntEnable = 2
	mainLatchFlip      = 3 // held only; video is not emulated
)

// Coin latch outputs.
const (
	coinLatchCounter1 = 4
	coinLatchCounter2 = 5
	coinLatchLockout1 = 6
	coinLatchLockout2 = 7
)
