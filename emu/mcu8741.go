package emu

// MCU8741 stands in for the 8741 microcontroller the Flying Shark bootleg
// hangs off DSP port 2. The DSP firmware reads the port three times at
// startup and only checks that the first and last values match while the
// middle one differs, so a counter's low bit is enough.
type MCU8741 struct {
	counter int32
}

// mcuResetCounter makes the first read after reset return 0.
const mcuResetCounter = -1

// NewMCU8741 creates an MCU in its reset state.
func NewMCU8741() *MCU8741 {
	return &MCU8741{counter: mcuResetCounter}
}

// Reset restores the reset counter.
func (m *MCU8741) Reset() {
	m.counter = mcuResetCounter
}

// Read advances the counter and returns its low bit.
func (m *MCU8741) Read() uint16 {
	m.counter++
	return uint16(m.counter & 1)
}

// Write accepts a value from the DSP. What the real MCU does with it is
// unknown, so it is dropped.
func (m *MCU8741) Write(val uint16) {}

// Counter returns the raw counter.
func (m *MCU8741) Counter() int32 { return m.counter }
