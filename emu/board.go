package emu

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/go-chip-m68k"
	"github.com/user-none/go-chip-z80"
)

// Compile-time interface checks.
var _ emucore.SaveStater = (*Board)(nil)
var _ emucore.MemoryInspector = (*Board)(nil)
var _ emucore.MemoryMapper = (*Board)(nil)
var _ m68k.Bus = (*Mem68K)(nil)
var _ z80.Bus = (*MemZ80)(nil)
var _ PrimarySpace = (*Mem68K)(nil)
var _ PrimarySpace = (*MemZ80)(nil)
var _ DSPPorts = (*DSPBridge)(nil)
var _ Coprocessor = (*ScriptedDSP)(nil)

// Flat address boundaries for ReadMemory.
const (
	flatMainRAMStart   = 0x00000
	flatSharedRAMStart = 0x10000
)

// The DSP is stepped one IN/OUT at a time so it stops as soon as it
// releases the primary.
const dspSliceCycles = dspOpCycles

// Board is one Twin Cobra family main board: the primary CPU and its bus,
// the DSP bridge and the scheduler that runs whichever processor the
// handshake allows.
type Board struct {
	hw     Hardware
	config HardwareConfig

	// Exactly one primary core is present, per config.MainCPU.
	m68k   *m68k.CPU
	mem68k *Mem68K
	z80    *z80.CPU
	memZ80 *MemZ80

	dsp         *DSPBridge
	mcu         *MCU8741
	coprocessor Coprocessor
	shared      *SharedRAM
	mainLatch   *Latch259
	coinLatch   *Latch259
	coins       *CoinCounters

	// Processor pins driven by the bridge
	mainHalt LineState
	dspHalt  LineState
	dspInt   LineState

	// Z80 interrupt held until acknowledged (IFF1 true->false)
	z80IntPending bool

	romCRC      uint32
	frame       uint64
	diagCount   int
	diagHook    func(Diagnostic)
	warningsOff bool
}

// NewBoard builds a board for hw with the given primary program ROM.
func NewBoard(hw Hardware, rom []byte) (*Board, error) {
	cfg, err := hw.Config()
	if err != nil {
		return nil, err
	}

	b := &Board{
		hw:        hw,
		config:    cfg,
		shared:    NewSharedRAM(sharedRAMSize),
		mainLatch: &Latch259{},
		coinLatch: &Latch259{},
		coins:     &CoinCounters{},
		diagHook:  LogDiagnostic,
	}
	if cfg.HasMCU {
		b.mcu = NewMCU8741()
	}

	var space PrimarySpace
	switch cfg.MainCPU {
	case MainCPU68000:
		b.mem68k = NewMem68K(rom, b.shared, b.mainLatch, b.coinLatch)
		b.romCRC = b.mem68k.romCRC
		space = b.mem68k
	case MainCPUZ80:
		b.memZ80 = NewMemZ80(rom, b.shared, b.mainLatch, b.coinLatch)
		b.romCRC = b.memZ80.romCRC
		space = b.memZ80
	}

	b.dspInt.OnChange = func(asserted bool) {
		if b.coprocessor != nil {
			b.coprocessor.SetInterrupt(asserted)
		}
	}
	b.dsp = NewDSPBridge(cfg.Variant, space, b.mcu, DSPLines{
		MainHalt: &b.mainHalt,
		DSPHalt:  &b.dspHalt,
		DSPInt:   &b.dspInt,
	})
	b.dsp.SetDiagnosticHook(b.diagnostic)

	b.mainLatch.Connect(mainLatchDSPEnable, b.dsp.SetDSPEnable)
	b.mainLatch.Connect(mainLatchIntEnable, b.dsp.SetIntEnable)
	connectCoinLatch(b.coinLatch, b.coins)

	b.Reset()
	return b, nil
}

// Reset performs a machine reset: RAM is kept, latches, bridge and the
// primary core are reset, and the primary runs.
func (b *Board) Reset() {
	b.mainLatch.Reset()
	b.coinLatch.Reset()
	b.dsp.Reset()
	b.z80IntPending = false

	switch b.config.MainCPU {
	case MainCPU68000:
		// m68k.New loads SSP and PC from the reset vectors.
		b.m68k = m68k.New(b.mem68k)
	case MainCPUZ80:
		if b.z80 == nil {
			b.z80 = z80.New(b.memZ80)
		} else {
			b.z80.Reset()
		}
	}
}

// AttachCoprocessor connects the DSP core. It receives INT changes from the
// bridge and is stepped while its halt line is clear.
func (b *Board) AttachCoprocessor(c Coprocessor) {
	b.coprocessor = c
	if c != nil && b.dspInt.Asserted() {
		c.SetInterrupt(true)
	}
}

// DSP returns the bridge; its In/Out/BIO methods are the DSP's I/O space.
func (b *Board) DSP() *DSPBridge { return b.dsp }

// Hardware returns the board type.
func (b *Board) Hardware() Hardware { return b.hw }

// Config returns the fixed board parameters.
func (b *Board) Config() HardwareConfig { return b.config }

// SharedRAM returns the RAM shared with the sound CPU.
func (b *Board) SharedRAM() *SharedRAM { return b.shared }

// Coins returns the coin counters.
func (b *Board) Coins() *CoinCounters { return b.coins }

// Space returns the primary address space.
func (b *Board) Space() PrimarySpace {
	if b.mem68k != nil {
		return b.mem68k
	}
	return b.memZ80
}

// WriteMainLatch performs a primary-side write to the main control latch.
func (b *Board) WriteMainLatch(data uint8) {
	b.mainLatch.WriteNibble(data)
}

// Frame returns the number of frames run since creation.
func (b *Board) Frame() uint64 { return b.frame }

// Diagnostics returns how many invalid DSP accesses have been reported.
func (b *Board) Diagnostics() int { return b.diagCount }

// SetDiagnosticHook replaces the sink for invalid DSP accesses. nil
// restores the default logger.
func (b *Board) SetDiagnosticHook(fn func(Diagnostic)) {
	if fn == nil {
		fn = LogDiagnostic
	}
	b.diagHook = fn
}

func (b *Board) diagnostic(d Diagnostic) {
	b.diagCount++
	if !b.warningsOff {
		b.diagHook(d)
	}
}

// SetOption applies a core option change identified by key.
func (b *Board) SetOption(key string, value string) {
	switch key {
	case "dsp_trace":
		b.dsp.SetTrace(value == "true")
	case "dsp_warnings":
		b.warningsOff = value == "false"
	}
}

// GetTiming returns FPS and scanline count.
func (b *Board) GetTiming() emucore.Timing {
	return b.config.Timing()
}

// RunFrame executes one frame. Each scanline the primary runs while its
// halt line is clear, then the DSP runs while its halt line is clear.
func (b *Board) RunFrame() {
	for i := 0; i < b.config.Scanlines; i++ {
		if i == b.config.VBlankLine && b.dsp.TakeInterrupt() {
			b.raiseMainInterrupt()
		}
		b.runMain(b.config.MainCyclesPerLine)
		b.runDSP(b.config.DSPCyclesPerLine)
	}
	b.frame++
}

// raiseMainInterrupt delivers the vblank interrupt to the primary core.
func (b *Board) raiseMainInterrupt() {
	switch b.config.MainCPU {
	case MainCPU68000:
		b.m68k.RequestInterrupt(4, nil)
	case MainCPUZ80:
		b.z80IntPending = true
		b.z80.INT(true, 0xFF)
	}
}

func (b *Board) runMain(budget int) {
	for budget > 0 && !b.mainHalt.Asserted() {
		var consumed int
		switch b.config.MainCPU {
		case MainCPU68000:
			consumed = b.m68k.StepCycles(budget)
		case MainCPUZ80:
			consumed = b.stepZ80()
		}
		if consumed == 0 {
			break // CPU halted
		}
		budget -= consumed
	}
}

// stepZ80 runs one Z80 instruction and drops INT once the CPU has taken
// it (IFF1 transitions true->false).
func (b *Board) stepZ80() int {
	var prevIFF1 bool
	if b.z80IntPending {
		prevIFF1 = b.z80.Registers().IFF1
	}

	consumed := b.z80.Step()

	if b.z80IntPending && prevIFF1 && !b.z80.Registers().IFF1 {
		b.z80IntPending = false
		b.z80.INT(false, 0xFF)
	}
	return consumed
}

func (b *Board) runDSP(budget int) {
	if b.coprocessor == nil {
		return
	}
	for budget > 0 && !b.dspHalt.Asserted() {
		consumed := b.coprocessor.StepCycles(min(budget, dspSliceCycles))
		if consumed == 0 {
			break // idle
		}
		budget -= consumed
	}
}

// mainRAM returns the primary work RAM.
func (b *Board) mainRAM() []byte {
	if b.mem68k != nil {
		return b.mem68k.ram[:]
	}
	return b.memZ80.ram[:]
}

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read. Work RAM starts at 0x00000, shared RAM at 0x10000.
func (b *Board) ReadMemory(addr uint32, buf []byte) uint32 {
	ram := b.mainRAM()
	mainEnd := uint32(flatMainRAMStart + len(ram))
	sharedEnd := uint32(flatSharedRAMStart + b.shared.Size())

	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		switch {
		case cur >= flatMainRAMStart && cur < mainEnd:
			buf[i] = ram[cur-flatMainRAMStart]
		case cur >= flatSharedRAMStart && cur < sharedEnd:
			buf[i] = b.shared.Read(cur - flatSharedRAMStart)
		default:
			return count
		}
		count++
	}
	return count
}

// MemoryMap returns the inspectable memory regions.
func (b *Board) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: len(b.mainRAM())},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (b *Board) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		ram := b.mainRAM()
		out := make([]byte, len(ram))
		copy(out, ram)
		return out
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (b *Board) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		copy(b.mainRAM(), data)
	}
}
