// Package cli provides a command-line runner for a board with a scripted DSP.
// It runs frames headless and reports the bridge state after each one.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/user-none/emtc/emu"
)

// Runner drives a board frame by frame.
type Runner struct {
	board *emu.Board
	dsp   *emu.ScriptedDSP
	out   io.Writer

	// Kick pulses the DSP-enable latch bit low then high before each
	// frame, the sequence the primary uses to start a DSP command.
	Kick bool
	// Realtime paces frames at the board's refresh rate.
	Realtime bool
}

// NewRunner creates a Runner that attaches dsp to board and writes its
// per-frame report to out.
func NewRunner(board *emu.Board, dsp *emu.ScriptedDSP, out io.Writer) *Runner {
	board.AttachCoprocessor(dsp)
	return &Runner{
		board: board,
		dsp:   dsp,
		out:   out,
		Kick:  true,
	}
}

// Run executes frames frames, or until ctx is done.
func (r *Runner) Run(ctx context.Context, frames int) error {
	timing := r.board.GetTiming()
	frameTime := time.Duration(float64(time.Second) / float64(timing.FPS))
	lastFrameTime := time.Now()

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if r.Kick {
			r.board.WriteMainLatch(0x00)
			r.board.WriteMainLatch(0x01)
		}
		r.board.RunFrame()
		r.report()

		if !r.Realtime {
			continue
		}
		sleepTime := frameTime - time.Since(lastFrameTime)
		if sleepTime > time.Millisecond {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleepTime):
			}
		}
		lastFrameTime = time.Now()
	}
	return nil
}

// report prints the bridge state after a frame.
func (r *Runner) report() {
	b := r.board.DSP()
	fmt.Fprintf(r.out, "frame %d: %s seg=%05x off=%04x bio=%t exec=%t reads=%04x invalid=%d\n",
		r.board.Frame(), b.State(), b.Segment(), b.Offset(),
		b.BIO(), b.ExecutePending(), r.dsp.Reads(), r.board.Diagnostics())
}
