package emu

import "testing"

type bridgeSnapshot struct {
	segment, offset           uint32
	bio, execute, dspOn       bool
	intEnable                 bool
	mcu                       int32
	mainHalt, dspHalt, dspInt bool
}

func snapshotBridge(b *DSPBridge, lines *testLines) bridgeSnapshot {
	return bridgeSnapshot{
		segment:   b.Segment(),
		offset:    b.Offset(),
		bio:       b.BIO(),
		execute:   b.ExecutePending(),
		dspOn:     b.DSPEnabled(),
		intEnable: b.IntEnabled(),
		mcu:       b.mcu.Counter(),
		mainHalt:  lines.mainHalt.Asserted(),
		dspHalt:   lines.dspHalt.Asserted(),
		dspInt:    lines.dspInt.Asserted(),
	}
}

// scramble drives the bridge into a different state than any set up below.
func scramble(b *DSPBridge) {
	b.Reset()
	b.Out(DSPPortAddrSel, 0xFFFF)
	b.In(DSPPortMCU)
	b.In(DSPPortMCU)
	b.In(DSPPortMCU)
	b.SetIntEnable(false)
}

func TestDSPSerialize_RoundTripStates(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *DSPBridge)
		state HandshakeState
	}{
		{
			name:  "reset",
			setup: func(b *DSPBridge) {},
			state: StatePrimaryActive,
		},
		{
			name: "coprocessor active with execute armed",
			setup: func(b *DSPBridge) {
				b.SetIntEnable(true)
				b.SetDSPEnable(true)
				b.Out(DSPPortAddrSel, 0x6001)
				b.Out(DSPPortData, 0)
				b.In(DSPPortMCU)
			},
			state: StateCoprocessorActive,
		},
		{
			name: "released with DSP enable still set",
			setup: func(b *DSPBridge) {
				b.SetDSPEnable(true)
				b.Out(DSPPortAddrSel, 0x6000)
				b.Out(DSPPortData, 0)
				b.Out(DSPPortBIO, 0)
			},
			state: StatePrimaryActive,
		},
		{
			name: "forced stop",
			setup: func(b *DSPBridge) {
				b.SetDSPEnable(true)
				b.Out(DSPPortBIO, 0x8000)
				b.SetDSPEnable(false)
			},
			state: StateStopped,
		},
	}

	for _, tt := range tests {
		b, _, lines, _ := makeTestBridge(&VariantWord, NewMCU8741())
		tt.setup(b)
		if b.State() != tt.state {
			t.Fatalf("%s: setup reached %s, expected %s", tt.name, b.State(), tt.state)
		}
		before := snapshotBridge(b, lines)

		buf := make([]byte, DSPSerializeSize)
		if err := b.Serialize(buf); err != nil {
			t.Fatalf("%s: Serialize failed: %v", tt.name, err)
		}
		scramble(b)
		if err := b.Deserialize(buf); err != nil {
			t.Fatalf("%s: Deserialize failed: %v", tt.name, err)
		}

		if after := snapshotBridge(b, lines); after != before {
			t.Errorf("%s: round trip mismatch\nbefore %+v\nafter  %+v", tt.name, before, after)
		}
		if b.State() != tt.state {
			t.Errorf("%s: expected %s after restore, got %s", tt.name, tt.state, b.State())
		}
	}
}

func TestDSPSerialize_ReappliesLinesFromRegisters(t *testing.T) {
	src, _, _, _ := makeTestBridge(&VariantByte, nil)
	src.SetDSPEnable(true)
	buf := make([]byte, DSPSerializeSize)
	if err := src.Serialize(buf); err != nil {
		t.Fatal(err)
	}

	// A fresh bridge has the primary running; loading must halt it.
	dst, _, lines, _ := makeTestBridge(&VariantByte, nil)
	if err := dst.Deserialize(buf); err != nil {
		t.Fatal(err)
	}
	if !lines.mainHalt.Asserted() || lines.dspHalt.Asserted() || !lines.dspInt.Asserted() {
		t.Errorf("lines not re-derived: main=%t dsp=%t int=%t",
			lines.mainHalt.Asserted(), lines.dspHalt.Asserted(), lines.dspInt.Asserted())
	}
}

func TestDSPSerialize_BufferTooSmall(t *testing.T) {
	b, _, _, _ := makeTestBridge(&VariantWord, nil)
	buf := make([]byte, DSPSerializeSize-1)
	if err := b.Serialize(buf); err == nil {
		t.Error("Serialize should reject a short buffer")
	}
	if err := b.Deserialize(buf); err == nil {
		t.Error("Deserialize should reject a short buffer")
	}
}

func TestDSPSerialize_FutureVersion(t *testing.T) {
	b, _, _, _ := makeTestBridge(&VariantWord, nil)
	buf := make([]byte, DSPSerializeSize)
	if err := b.Serialize(buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = dspSerializeVersion + 1
	if err := b.Deserialize(buf); err == nil {
		t.Error("Deserialize should reject a newer version")
	}
}
