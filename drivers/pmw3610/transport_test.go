package pmw3610

import (
	"testing"
)

// fakeWire models the three lines at electrical level: it samples the data
// line on every rising clock edge and serves queued bits while the data line
// is an input.
type fakeWire struct {
	csLevel   bool
	sdioLevel bool
	sdioIsOut bool

	sampled []bool // host-driven levels captured at rising clock edges
	serve   []bool // bits presented to the host while sdio is input
	serveIx int

	csEdges int // assert count
}

type fakeCS struct{ w *fakeWire }

func (p fakeCS) High() { p.w.csLevel = true }
func (p fakeCS) Low() {
	if p.w.csLevel {
		p.w.csEdges++
	}
	p.w.csLevel = false
}

type fakeSCLK struct{ w *fakeWire }

func (p fakeSCLK) High() {
	if p.w.sdioIsOut {
		p.w.sampled = append(p.w.sampled, p.w.sdioLevel)
	} else if p.w.serveIx < len(p.w.serve) {
		p.w.sdioLevel = p.w.serve[p.w.serveIx]
		p.w.serveIx++
	}
}
func (p fakeSCLK) Low() {}

type fakeSDIO struct{ w *fakeWire }

func (p fakeSDIO) SetOutput() { p.w.sdioIsOut = true }
func (p fakeSDIO) SetInput()  { p.w.sdioIsOut = false }
func (p fakeSDIO) High()      { p.w.sdioLevel = true }
func (p fakeSDIO) Low()       { p.w.sdioLevel = false }
func (p fakeSDIO) Get() bool  { return p.w.sdioLevel }

type noDelay struct{}

func (noDelay) DelayUs(uint32) {}
func (noDelay) DelayMs(uint32) {}

// recDelay records every microsecond wait in order.
type recDelay struct{ us []uint32 }

func (d *recDelay) DelayUs(n uint32) { d.us = append(d.us, n) }
func (d *recDelay) DelayMs(uint32)   {}

func newFakeWire() (*fakeWire, *ThreeWire) {
	w := &fakeWire{csLevel: true}
	t := NewThreeWire(fakeCS{w}, fakeSCLK{w}, fakeSDIO{w}, noDelay{})
	return w, t
}

func bitsOf(b uint8) []bool {
	out := make([]bool, 8)
	for i := 0; i < 8; i++ {
		out[i] = b&(0x80>>i) != 0
	}
	return out
}

func TestWriteByteShiftsMSBFirst(t *testing.T) {
	for _, b := range []uint8{0x00, 0xFF, 0xA5, 0x3E, 0x80, 0x01} {
		w, tw := newFakeWire()
		tw.writeByte(b)
		want := bitsOf(b)
		if len(w.sampled) != 8 {
			t.Fatalf("byte 0x%02X: sampled %d bits, want 8", b, len(w.sampled))
		}
		for i := range want {
			if w.sampled[i] != want[i] {
				t.Errorf("byte 0x%02X: bit %d = %v, want %v", b, i, w.sampled[i], want[i])
			}
		}
	}
}

func TestReadByteAssemblesMSBFirst(t *testing.T) {
	for _, b := range []uint8{0x00, 0xFF, 0x5A, 0x3E, 0x01} {
		w, tw := newFakeWire()
		w.serve = bitsOf(b)
		if got := tw.readByte(); got != b {
			t.Errorf("readByte = 0x%02X, want 0x%02X", got, b)
		}
		if w.sdioIsOut {
			t.Error("data line left as output after read")
		}
	}
}

func TestReadRegisterFraming(t *testing.T) {
	w, tw := newFakeWire()
	w.serve = bitsOf(0x42)

	got := tw.ReadRegister(regProductID | writeMarker) // high bit must be stripped

	if got != 0x42 {
		t.Fatalf("ReadRegister = 0x%02X, want 0x42", got)
	}
	if w.csEdges != 1 {
		t.Errorf("chip-select asserted %d times, want 1", w.csEdges)
	}
	if !w.csLevel {
		t.Error("chip-select left asserted")
	}
	// The 8 sampled bits are the address byte; its MSB must be clear.
	if len(w.sampled) != 8 || w.sampled[0] {
		t.Errorf("address byte MSB not cleared for read: %v", w.sampled)
	}
}

func TestWriteRegisterSetsWriteMarker(t *testing.T) {
	w, tw := newFakeWire()

	tw.WriteRegister(regPowerUpReset, resetValue)

	if len(w.sampled) != 16 {
		t.Fatalf("sampled %d bits, want 16 (address + value)", len(w.sampled))
	}
	if !w.sampled[0] {
		t.Error("address byte MSB not set for write")
	}
	var val uint8
	for _, bit := range w.sampled[8:] {
		val <<= 1
		if bit {
			val |= 1
		}
	}
	if val != resetValue {
		t.Errorf("value byte = 0x%02X, want 0x%02X", val, resetValue)
	}
	if !w.csLevel {
		t.Error("chip-select left asserted")
	}
}

func TestBurstReadStreamsBytes(t *testing.T) {
	w, tw := newFakeWire()
	for _, b := range []uint8{0x80, 0xFB, 0x0A, 0xF0} {
		w.serve = append(w.serve, bitsOf(b)...)
	}

	buf := make([]byte, 4)
	tw.BurstRead(regMotionBurst, buf)

	want := []byte{0x80, 0xFB, 0x0A, 0xF0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = 0x%02X, want 0x%02X", i, buf[i], want[i])
		}
	}
	if w.csEdges != 1 {
		t.Errorf("chip-select asserted %d times, want 1", w.csEdges)
	}
}

func TestBurstReadExitHold(t *testing.T) {
	w := &fakeWire{csLevel: true}
	dly := &recDelay{}
	tw := NewThreeWire(fakeCS{w}, fakeSCLK{w}, fakeSDIO{w}, dly)

	buf := make([]byte, burstSizeShort)
	tw.BurstRead(regMotionBurst, buf)

	if len(dly.us) == 0 {
		t.Fatal("no delays recorded")
	}
	last := dly.us[len(dly.us)-1]
	if last != tBEXIT {
		t.Errorf("final burst delay = %dµs, want %dµs", last, tBEXIT)
	}
	// The exit hold must exceed the inter-byte gap so the sensor sees a real
	// end-of-burst, not just another byte boundary.
	if last <= tSRX {
		t.Errorf("burst exit hold %dµs not longer than inter-byte gap %dµs", last, tSRX)
	}
}
