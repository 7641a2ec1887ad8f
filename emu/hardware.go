package emu

import (
	"fmt"
	"strings"

	emucore "github.com/user-none/eblitui/api"
)

// Hardware identifies a board in the Twin Cobra family.
type Hardware int

const (
	HardwareTwinCobra          Hardware = iota // 68000 main CPU, word-addressed bridge
	HardwareFlyingShark                        // same board as Twin Cobra
	HardwareFlyingSharkBootleg                 // adds an 8741 MCU on DSP port 2
	HardwareWardner                            // Z80 main CPU, byte-addressed bridge
)

// HardwareConfig holds the fixed per-board parameters. It is selected once at
// construction and never changes while the board runs.
type HardwareConfig struct {
	Name    string
	Variant *Variant
	MainCPU MainCPU
	HasMCU  bool // DSP port 2 is wired to the 8741 MCU

	MainCyclesPerLine int // primary CPU cycles per scanline
	DSPCyclesPerLine  int // DSP instruction cycles per scanline
	Scanlines         int // total scanlines per frame
	VBlankLine        int // scanline on which the vblank interrupt fires
	FPS               int // nominal refresh, rounded
}

// MainCPU selects the primary processor core.
type MainCPU int

const (
	MainCPU68000 MainCPU = iota
	MainCPUZ80
)

// All boards share the same 28 MHz video timing: a 7 MHz pixel clock with
// 446 clocks per line and 286 lines per frame (~54.88 Hz). The TMS32010
// runs from a 14 MHz crystal and executes one instruction per 4 clocks.
const (
	videoScanlines   = 286
	videoVBlankLine  = 240
	videoFPS         = 55
	dspCyclesPerLine = 223 // 3.5 MHz / (54.88 Hz * 286)
)

var twinCobraConfig = HardwareConfig{
	Name:              "twincobr",
	Variant:           &VariantWord,
	MainCPU:           MainCPU68000,
	MainCyclesPerLine: 446, // 7 MHz 68000
	DSPCyclesPerLine:  dspCyclesPerLine,
	Scanlines:         videoScanlines,
	VBlankLine:        videoVBlankLine,
	FPS:               videoFPS,
}

var wardnerConfig = HardwareConfig{
	Name:              "wardner",
	Variant:           &VariantByte,
	MainCPU:           MainCPUZ80,
	MainCyclesPerLine: 382, // 6 MHz Z80
	DSPCyclesPerLine:  dspCyclesPerLine,
	Scanlines:         videoScanlines,
	VBlankLine:        videoVBlankLine,
	FPS:               videoFPS,
}

// Config returns the fixed parameters for the board.
func (h Hardware) Config() (HardwareConfig, error) {
	switch h {
	case HardwareTwinCobra:
		return twinCobraConfig, nil
	case HardwareFlyingShark:
		cfg := twinCobraConfig
		cfg.Name = "fshark"
		return cfg, nil
	case HardwareFlyingSharkBootleg:
		cfg := twinCobraConfig
		cfg.Name = "fsharkbt"
		cfg.HasMCU = true
		return cfg, nil
	case HardwareWardner:
		return wardnerConfig, nil
	}
	return HardwareConfig{}, fmt.Errorf("unknown hardware %d", int(h))
}

// String returns the short board name.
func (h Hardware) String() string {
	cfg, err := h.Config()
	if err != nil {
		return fmt.Sprintf("Hardware(%d)", int(h))
	}
	return cfg.Name
}

// ParseHardware maps a short board name to its Hardware value.
func ParseHardware(name string) (Hardware, error) {
	switch strings.ToLower(name) {
	case "twincobr", "ktiger":
		return HardwareTwinCobra, nil
	case "fshark", "skyshark", "hishouza":
		return HardwareFlyingShark, nil
	case "fsharkbt":
		return HardwareFlyingSharkBootleg, nil
	case "wardner", "pyros":
		return HardwareWardner, nil
	}
	return 0, fmt.Errorf("unknown hardware %q (use twincobr, fshark, fsharkbt or wardner)", name)
}

// Timing returns FPS and scanline count in the host API's terms.
func (c HardwareConfig) Timing() emucore.Timing {
	return emucore.Timing{
		FPS:       c.FPS,
		Scanlines: c.Scanlines,
	}
}
