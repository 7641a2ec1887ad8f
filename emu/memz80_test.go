package emu

import "testing"

// makeTestZ80ROM returns a program ROM with JR $ (0x18 0xFE) at 0.
func makeTestZ80ROM() []byte {
	rom := make([]byte, 0x100)
	rom[0] = 0x18
	rom[1] = 0xFE
	return rom
}

func makeTestMemZ80() (*MemZ80, *Latch259, *Latch259) {
	mainLatch := &Latch259{}
	coinLatch := &Latch259{}
	return NewMemZ80(makeTestZ80ROM(), NewSharedRAM(sharedRAMSize), mainLatch, coinLatch), mainLatch, coinLatch
}

func TestMemZ80_ROM(t *testing.T) {
	mem, _, _ := makeTestMemZ80()
	if got := mem.Fetch(0); got != 0x18 {
		t.Errorf("expected 0x18, got 0x%02X", got)
	}
	if got := mem.Read(0x6FFF); got != 0xFF {
		t.Errorf("past loaded ROM: expected 0xFF, got 0x%02X", got)
	}
	mem.Write(0x0000, 0x00)
	if got := mem.Read(0); got != 0x18 {
		t.Errorf("ROM write should be ignored, got 0x%02X", got)
	}
}

func TestMemZ80_RAMRegions(t *testing.T) {
	mem, _, _ := makeTestMemZ80()
	for _, addr := range []uint16{0x7000, 0x7FFF, 0x8000, 0x8FFF, 0xA000, 0xADFF, 0xC000, 0xC7FF} {
		mem.Write(addr, 0x5A)
		if got := mem.Read(addr); got != 0x5A {
			t.Errorf("0x%04X: expected 0x5A, got 0x%02X", addr, got)
		}
	}
	// Unmapped
	mem.Write(0x9000, 0x5A)
	if got := mem.Read(0x9000); got != 0xFF {
		t.Errorf("unmapped: expected 0xFF, got 0x%02X", got)
	}
}

func TestMemZ80_SharedRAM(t *testing.T) {
	mem, _, _ := makeTestMemZ80()
	mem.Write(0xC010, 0x99)
	if got := mem.shared.Read(0x10); got != 0x99 {
		t.Errorf("expected 0x99 in shared RAM, got 0x%02X", got)
	}
}

func TestMemZ80_LatchPorts(t *testing.T) {
	mem, mainLatch, coinLatch := makeTestMemZ80()

	mem.Out(0x005C, 0x01)
	if !mainLatch.Q(mainLatchDSPEnable) {
		t.Error("port 0x5C should drive the main latch")
	}
	// High address byte is not decoded
	mem.Out(0x125C, 0x05)
	if !mainLatch.Q(mainLatchIntEnable) {
		t.Error("port 0x125C should mirror 0x5C")
	}
	mem.Out(0x005A, 0x0B)
	if !coinLatch.Q(coinLatchCounter2) {
		t.Error("port 0x5A should drive the coin latch")
	}
	if got := mem.In(0x5A); got != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02X", got)
	}
}

func TestMemZ80_PrimarySpaceLittleEndian(t *testing.T) {
	mem, _, _ := makeTestMemZ80()
	mem.Write16(0x7010, 0x1234)
	if mem.Read(0x7010) != 0x34 || mem.Read(0x7011) != 0x12 {
		t.Errorf("expected 34 12, got %02X %02X", mem.Read(0x7010), mem.Read(0x7011))
	}
	if got := mem.Read16(0x7010); got != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", got)
	}
	mem.Write8(0x8000, 0x42)
	if got := mem.Read8(0x8000); got != 0x42 {
		t.Errorf("expected 0x42, got 0x%02X", got)
	}
}
