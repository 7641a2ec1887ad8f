package emu

import "testing"

func TestMCU8741_ChallengeSequence(t *testing.T) {
	m := NewMCU8741()

	first, second, third := m.Read(), m.Read(), m.Read()
	if first != third {
		t.Errorf("first and third reads should match: %d vs %d", first, third)
	}
	if first == second {
		t.Errorf("second read should differ from first: both %d", first)
	}
	if first != 0 || second != 1 {
		t.Errorf("expected 0,1,0, got %d,%d,%d", first, second, third)
	}
}

func TestMCU8741_ResetRestartsSequence(t *testing.T) {
	m := NewMCU8741()
	m.Read()
	m.Read()
	m.Reset()
	if m.Counter() != -1 {
		t.Errorf("expected counter -1 after reset, got %d", m.Counter())
	}
	if got := m.Read(); got != 0 {
		t.Errorf("first read after reset: expected 0, got %d", got)
	}
}

func TestMCU8741_WriteIgnored(t *testing.T) {
	m := NewMCU8741()
	m.Write(0x1234)
	if m.Counter() != -1 {
		t.Errorf("write should not touch the counter, got %d", m.Counter())
	}
}

func TestMCU8741_ThroughDSPPort2(t *testing.T) {
	b, _, _, _ := makeTestBridge(&VariantWord, NewMCU8741())

	reads := []uint16{b.In(DSPPortMCU), b.In(DSPPortMCU), b.In(DSPPortMCU)}
	if reads[0] != reads[2] || reads[0] == reads[1] {
		t.Errorf("expected a, b, a pattern, got %v", reads)
	}

	// Bridge reset also resets the MCU
	b.Reset()
	if got := b.In(DSPPortMCU); got != 0 {
		t.Errorf("first read after reset: expected 0, got %d", got)
	}
}
