// Command dsptrace runs a Twin Cobra family board with a scripted DSP and
// reports the bridge state after every frame.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/user-none/emtc/cli"
	"github.com/user-none/emtc/emu"
)

func main() {
	hwFlag := flag.String("hw", "twincobr", "hardware: twincobr, fshark, fsharkbt or wardner")
	romPath := flag.String("rom", "", "path to main CPU program ROM, or its even half with -rom-odd (optional)")
	romOddPath := flag.String("rom-odd", "", "path to the odd half of a byte-split 68000 program ROM")
	scriptPath := flag.String("script", "", "path to DSP port script (required)")
	frames := flag.Int("frames", 1, "number of frames to run")
	kick := flag.Bool("kick", true, "enable the DSP from the main latch before each frame")
	realtime := flag.Bool("realtime", false, "pace frames at the board refresh rate")
	loadPath := flag.String("load", "", "save state to load before running")
	savePath := flag.String("save", "", "write a save state after running")
	trace := flag.Bool("trace", false, "log every DSP port access")
	quiet := flag.Bool("quiet", false, "do not log invalid DSP accesses")
	flag.Parse()

	if *scriptPath == "" {
		log.Fatal("DSP script is required. Usage: dsptrace -script <path>")
	}

	hw, err := emu.ParseHardware(*hwFlag)
	if err != nil {
		log.Fatal(err)
	}

	rom, err := loadROM(*romPath, *romOddPath)
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}
	if rom != nil {
		if err := emu.ValidateProgramROM(hw, rom); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	f, err := os.Open(*scriptPath)
	if err != nil {
		log.Fatalf("Failed to open script: %v", err)
	}
	ops, err := emu.ParseDSPScript(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}

	board, err := emu.NewBoard(hw, rom)
	if err != nil {
		log.Fatalf("Failed to initialize board: %v", err)
	}
	if *trace {
		board.SetOption("dsp_trace", "true")
	}
	if *quiet {
		board.SetOption("dsp_warnings", "false")
	}

	if *loadPath != "" {
		data, err := os.ReadFile(*loadPath)
		if err != nil {
			log.Fatalf("Failed to read save state: %v", err)
		}
		if err := board.Deserialize(data); err != nil {
			log.Fatalf("Failed to load save state: %v", err)
		}
	}

	runner := cli.NewRunner(board, emu.NewScriptedDSP(board.DSP(), ops), os.Stdout)
	runner.Kick = *kick
	runner.Realtime = *realtime

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := runner.Run(ctx, *frames); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Run failed: %v", err)
	}

	if *savePath != "" {
		data, err := board.Serialize()
		if err != nil {
			log.Fatalf("Failed to create save state: %v", err)
		}
		if err := os.WriteFile(*savePath, data, 0644); err != nil {
			log.Fatalf("Failed to write save state: %v", err)
		}
	}
}

// loadROM reads the program ROM. With an odd half given, path is the even
// half and the two are interleaved.
func loadROM(path, oddPath string) ([]byte, error) {
	if path == "" {
		if oddPath != "" {
			return nil, errors.New("-rom-odd needs -rom")
		}
		return nil, nil
	}
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if oddPath == "" {
		return rom, nil
	}
	odd, err := os.ReadFile(oddPath)
	if err != nil {
		return nil, err
	}
	return emu.InterleaveROM(rom, odd)
}
