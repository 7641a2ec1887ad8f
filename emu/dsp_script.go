package emu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Coprocessor is the DSP core the board schedules. The board only steps it
// while its halt line is clear.
type Coprocessor interface {
	// StepCycles runs for up to budget cycles and returns the cycles
	// used. Zero means the core is idle.
	StepCycles(budget int) int
	// SetInterrupt drives the INT pin.
	SetInterrupt(asserted bool)
}

// DSPPorts is the DSP's view of the bridge.
type DSPPorts interface {
	In(port uint8) uint16
	Out(port uint8, val uint16)
	BIO() bool
}

// DSPOpKind is a scripted DSP operation.
type DSPOpKind int

const (
	DSPOpOut DSPOpKind = iota // OUT port, value
	DSPOpIn                   // IN port
	DSPOpEnd                  // idle until the next interrupt
)

// DSPOp is one scripted port operation.
type DSPOp struct {
	Kind  DSPOpKind
	Port  uint8
	Value uint16
}

// TMS32010 IN and OUT both take two instruction cycles.
const dspOpCycles = 2

// ScriptedDSP replays a fixed list of port operations each time its
// interrupt is asserted, the way the real DSP program runs its command
// handler from the INT vector. It stands in for a TMS32010 core.
type ScriptedDSP struct {
	ports   DSPPorts
	ops     []DSPOp
	pc      int
	running bool
	reads   []uint16
}

// NewScriptedDSP creates a scripted core talking to ports.
func NewScriptedDSP(ports DSPPorts, ops []DSPOp) *ScriptedDSP {
	return &ScriptedDSP{ports: ports, ops: ops}
}

// SetInterrupt implements Coprocessor. A rising INT restarts the script.
func (d *ScriptedDSP) SetInterrupt(asserted bool) {
	if asserted {
		d.pc = 0
		d.running = true
	}
}

// StepCycles implements Coprocessor.
func (d *ScriptedDSP) StepCycles(budget int) int {
	used := 0
	for d.running && used < budget {
		if d.pc >= len(d.ops) {
			d.running = false
			break
		}
		op := d.ops[d.pc]
		d.pc++
		switch op.Kind {
		case DSPOpOut:
			d.ports.Out(op.Port, op.Value)
		case DSPOpIn:
			d.reads = append(d.reads, d.ports.In(op.Port))
		case DSPOpEnd:
			d.running = false
		}
		used += dspOpCycles
	}
	return used
}

// Running reports whether the script has operations left to run.
func (d *ScriptedDSP) Running() bool { return d.running }

// Reads returns every value read by IN operations so far.
func (d *ScriptedDSP) Reads() []uint16 {
	return d.reads
}

// ParseDSPScript reads a script of port operations, one per line:
//
//	out <port> <hex value>
//	in <port>
//	end
//
// Blank lines and text after '#' are ignored.
func ParseDSPScript(r io.Reader) ([]DSPOp, error) {
	var ops []DSPOp
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		op, err := parseDSPOp(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseDSPOp(fields []string) (DSPOp, error) {
	switch strings.ToLower(fields[0]) {
	case "out":
		if len(fields) != 3 {
			return DSPOp{}, errors.New("out takes a port and a value")
		}
		port, err := parseDSPPort(fields[1])
		if err != nil {
			return DSPOp{}, err
		}
		val, err := strconv.ParseUint(strings.TrimPrefix(fields[2], "0x"), 16, 16)
		if err != nil {
			return DSPOp{}, fmt.Errorf("bad value %q", fields[2])
		}
		return DSPOp{Kind: DSPOpOut, Port: port, Value: uint16(val)}, nil
	case "in":
		if len(fields) != 2 {
			return DSPOp{}, errors.New("in takes a port")
		}
		port, err := parseDSPPort(fields[1])
		if err != nil {
			return DSPOp{}, err
		}
		return DSPOp{Kind: DSPOpIn, Port: port}, nil
	case "end":
		return DSPOp{Kind: DSPOpEnd}, nil
	}
	return DSPOp{}, fmt.Errorf("unknown operation %q", fields[0])
}

func parseDSPPort(s string) (uint8, error) {
	port, err := strconv.ParseUint(s, 10, 8)
	if err != nil || port > DSPPortBIO {
		return 0, fmt.Errorf("bad port %q (0-3)", s)
	}
	return uint8(port), nil
}
