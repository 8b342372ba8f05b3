package pmw3610

import "time"

// ---------------- Pin capabilities ----------------

// The driver owns its pins exclusively for its lifetime; implementations are
// swapped per target platform without touching protocol logic.

// OutputPin drives a line high or low.
type OutputPin interface {
	High()
	Low()
}

// InputPin reads a line level.
type InputPin interface {
	Get() bool
}

// BidiPin is a single data line switchable between output and input at
// runtime (the sensor has no separate MISO/MOSI).
type BidiPin interface {
	SetOutput()
	SetInput()
	High()
	Low()
	Get() bool
}

// Delayer provides the two protocol delay tiers. Implementations must not
// undershoot: microsecond waits pace individual protocol phases, millisecond
// waits cover reset settling and retry backoff.
type Delayer interface {
	DelayUs(n uint32)
	DelayMs(n uint32)
}

// SleepDelayer implements Delayer with time.Sleep. Adequate on hosts and on
// MCUs whose scheduler tick is finer than the protocol timings; targets with
// coarse timers should supply a cycle-counted implementation instead.
type SleepDelayer struct{}

func (SleepDelayer) DelayUs(n uint32) { time.Sleep(time.Duration(n) * time.Microsecond) }
func (SleepDelayer) DelayMs(n uint32) { time.Sleep(time.Duration(n) * time.Millisecond) }

// ---------------- Register bus contract ----------------

// Bus is the register-level transport. Electrical faults are invisible at
// this layer by construction: methods return values, never errors, and
// correctness relies on the protocol-level checks above (identity and
// self-test verification during initialization).
type Bus interface {
	ReadRegister(addr uint8) uint8
	WriteRegister(addr, value uint8)
	BurstRead(addr uint8, buf []byte)
}

// ---------------- Bit-bang three-wire transport ----------------

// ThreeWire drives the sensor's half-duplex serial interface from plain
// GPIOs: a clock output, a chip-select output and one bidirectional data
// line. Bits move MSB-first; the sensor latches host data on the rising
// clock edge and presents its own data while the clock is high.
type ThreeWire struct {
	CS   OutputPin
	SCLK OutputPin
	SDIO BidiPin
	Dly  Delayer
}

// NewThreeWire wires the transport and parks the bus idle (clock high,
// chip-select deasserted).
func NewThreeWire(cs, sclk OutputPin, sdio BidiPin, dly Delayer) *ThreeWire {
	t := &ThreeWire{CS: cs, SCLK: sclk, SDIO: sdio, Dly: dly}
	t.CS.High()
	t.SCLK.High()
	return t
}

// writeByte shifts out eight bits MSB-first with the data line as output.
func (t *ThreeWire) writeByte(b uint8) {
	t.SDIO.SetOutput()
	for mask := uint8(0x80); mask != 0; mask >>= 1 {
		t.SCLK.Low()
		if b&mask != 0 {
			t.SDIO.High()
		} else {
			t.SDIO.Low()
		}
		t.Dly.DelayUs(1)
		t.SCLK.High()
		t.Dly.DelayUs(1)
	}
}

// readByte samples eight bits MSB-first with the data line as input.
func (t *ThreeWire) readByte() uint8 {
	t.SDIO.SetInput()
	var b uint8
	for i := 0; i < 8; i++ {
		t.SCLK.Low()
		t.Dly.DelayUs(1)
		t.SCLK.High()
		t.Dly.DelayUs(1)
		b <<= 1
		if t.SDIO.Get() {
			b |= 1
		}
	}
	return b
}

// ReadRegister performs a single framed register read.
func (t *ThreeWire) ReadRegister(addr uint8) uint8 {
	t.CS.Low()
	t.Dly.DelayUs(tNCSSCLK)
	t.writeByte(addr &^ writeMarker)
	t.Dly.DelayUs(tSRAD)
	v := t.readByte()
	t.Dly.DelayUs(tSRX)
	t.CS.High()
	t.Dly.DelayUs(tSRX)
	return v
}

// WriteRegister performs a single framed register write.
func (t *ThreeWire) WriteRegister(addr, value uint8) {
	t.CS.Low()
	t.Dly.DelayUs(tNCSSCLK)
	t.writeByte(addr | writeMarker)
	t.writeByte(value)
	t.Dly.DelayUs(tSWW)
	t.CS.High()
	t.Dly.DelayUs(tSWR)
}

// BurstRead streams len(buf) bytes from a single framed exchange.
func (t *ThreeWire) BurstRead(addr uint8, buf []byte) {
	t.CS.Low()
	t.Dly.DelayUs(tNCSSCLK)
	t.writeByte(addr &^ writeMarker)
	t.Dly.DelayUs(tSRAD)
	for i := range buf {
		buf[i] = t.readByte()
		t.Dly.DelayUs(tSRX)
	}
	t.CS.High()
	t.Dly.DelayUs(tBEXIT)
}
