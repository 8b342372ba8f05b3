// Package pmw3610 provides a driver for the PixArt PMW3610 low-power optical
// motion sensor found in wireless trackballs and trackpoint modules.
//
// Design notes (datasheet references):
// • Half-duplex three-wire serial: clock, chip-select and one bidirectional
//   data line, MSB-first, no hardware SPI required (see ThreeWire).
// • Privileged registers sit behind an internal SPI clock gate (0x41) and an
//   extended register page selected through 0x7F.
// • Deltas are 12-bit two's complement split across three burst bytes.
// • Smart mode trades tracking quality for stability on poor surfaces; the
//   driver toggles it from the reported shutter value with hysteresis.
//
// The driver performs no bus traffic at construction; Configure runs the
// power-up sequence and returns typed errors the caller may retry.
package pmw3610

import (
	"errors"

	"motioncode-go/x/conv"
	"motioncode-go/x/mathx"
)

// Errors returned by the driver.
var (
	ErrInitFailed = errors.New("pmw3610: self-test register verification failed")
	ErrInvalidCPI = errors.New("pmw3610: resolution out of range")
)

// IdentityError reports an unexpected product-id byte: either the wrong chip
// is wired or the transfer was corrupted (the two are indistinguishable at
// this layer).
type IdentityError struct {
	Got uint8
}

func (e IdentityError) Error() string {
	buf := make([]byte, 2)
	return "pmw3610: unexpected product id 0x" + string(conv.U8Hex(buf, e.Got))
}

// Config controls device behaviour. The zero value selects device defaults.
type Config struct {
	// CPI is the motion resolution, 200–3200 in steps of 200. Zero or
	// negative leaves the device default untouched.
	CPI int16
	// InvertX / InvertY flip the respective axis in hardware.
	InvertX bool
	InvertY bool
	// SwapXY exchanges the decoded axes (software, applied after inversion).
	SwapXY bool
	// ForceAwake keeps the sensor out of its rest states.
	ForceAwake bool
	// SmartMode enables shutter-driven sensitivity adaptation. Fixes the
	// burst frame length for the lifetime of the device.
	SmartMode bool
}

// Device wraps a register bus connection to a PMW3610.
type Device struct {
	bus Bus
	dly Delayer
	cfg Config

	// smartLow tracks whether the lowered-sensitivity write is in effect;
	// mutated only on shutter threshold crossings.
	smartLow bool

	burst [burstSizeExtended]byte
	blen  int
}

// New creates the device object. No bus traffic happens until Configure.
func New(bus Bus, dly Delayer, cfg Config) *Device {
	blen := burstSizeShort
	if cfg.SmartMode {
		blen = burstSizeExtended
	}
	return &Device{bus: bus, dly: dly, cfg: cfg, blen: blen}
}

// Configure runs the full power-up sequence: reset, identity check,
// self-test, register drain, baseline tuning and the optional axis/CPI/
// force-awake configuration. On identity or self-test failure the sequence
// aborts immediately; the caller decides whether to retry.
func (d *Device) Configure() error {
	d.bus.WriteRegister(regPowerUpReset, resetValue)
	d.dly.DelayMs(tResetMs)

	if id := d.bus.ReadRegister(regProductID); id != productID {
		return IdentityError{Got: id}
	}

	d.setSPIClock(true)

	// Clear the observation register and verify the self-test bits latch.
	d.bus.WriteRegister(regObservation, 0x00)
	d.dly.DelayMs(tSelfTestMs)
	if obs := d.bus.ReadRegister(regObservation); obs&observationMask != observationMask {
		d.setSPIClock(false)
		return ErrInitFailed
	}

	// Drain any stale motion state.
	d.bus.ReadRegister(regMotion)
	d.bus.ReadRegister(regDeltaXL)
	d.bus.ReadRegister(regDeltaYL)
	d.bus.ReadRegister(regDeltaXYH)

	// Baseline tuning. Fixed values, not user-configurable.
	d.bus.WriteRegister(regPerformance, performanceTuning)
	d.bus.WriteRegister(regRunDownshift, runDownshiftRate)
	d.bus.WriteRegister(regRest1Rate, rest1SampleRate)
	d.bus.WriteRegister(regRest1Downshift, rest1DownshiftRate)

	if d.cfg.InvertX || d.cfg.InvertY {
		d.bus.WriteRegister(regPageSelect, pageExtended)
		v := d.bus.ReadRegister(regResStep)
		if d.cfg.InvertX {
			v |= resInvertX
		}
		if d.cfg.InvertY {
			v |= resInvertY
		}
		d.bus.WriteRegister(regResStep, v)
		d.bus.WriteRegister(regPageSelect, pageBase)
	}

	d.setSPIClock(false)

	if d.cfg.CPI > 0 {
		if err := d.SetCPI(d.cfg.CPI); err != nil {
			return err
		}
	}
	return d.SetForceAwake(d.cfg.ForceAwake)
}

// SetCPI sets the motion resolution. Values outside 200–3200 are rejected
// with ErrInvalidCPI before any bus activity; values that are not an exact
// multiple of 200 round down to the previous step.
func (d *Device) SetCPI(cpi int16) error {
	if !mathx.Between(cpi, int16(cpiMin), int16(cpiMax)) {
		return ErrInvalidCPI
	}
	step := uint8(cpi / cpiStep)

	d.setSPIClock(true)
	d.bus.WriteRegister(regPageSelect, pageExtended)
	v := d.bus.ReadRegister(regResStep)
	v = (v &^ resStepMask) | (step & resStepMask)
	d.bus.WriteRegister(regResStep, v)
	d.bus.WriteRegister(regPageSelect, pageBase)
	d.setSPIClock(false)
	return nil
}

// SetForceAwake switches the performance register's force-mode field between
// forced and normal operation.
func (d *Device) SetForceAwake(enabled bool) error {
	d.setSPIClock(true)
	v := d.bus.ReadRegister(regPerformance)
	v &^= perfModeMask
	if enabled {
		v |= perfModeForced
	} else {
		v |= perfModeNormal
	}
	d.bus.WriteRegister(regPerformance, v)
	d.setSPIClock(false)
	return nil
}

// setSPIClock requests or releases the sensor's internal SPI clock. Must
// bracket every access to paged or calibration registers; the steady-state
// motion burst does not need it.
func (d *Device) setSPIClock(enabled bool) {
	if enabled {
		d.bus.WriteRegister(regSPIClkOnReq, spiClkEnable)
	} else {
		d.bus.WriteRegister(regSPIClkOnReq, spiClkRelease)
	}
}

// BurstLen reports the configured burst frame length (4, or 7 with smart
// mode). Fixed for the lifetime of the device.
func (d *Device) BurstLen() int { return d.blen }

// ReadMotion performs one burst read and decodes it into a sample. A zero
// sample means "no motion pending"; callers discard it.
func (d *Device) ReadMotion() Sample {
	buf := d.burst[:d.blen]
	d.bus.BurstRead(regMotionBurst, buf)
	return d.decode(buf)
}
