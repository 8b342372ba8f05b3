package pmw3610

// Sample holds one decoded motion report. Zero/zero is the canonical
// "no motion" value; callers filter it before emission.
type Sample struct {
	DX int16
	DY int16
}

// IsZero reports whether the sample carries no displacement.
func (s Sample) IsZero() bool { return s.DX == 0 && s.DY == 0 }

// decode parses a burst frame. If the motion-pending bit is clear the zero
// sample returns immediately with no further parsing. Otherwise the two
// 12-bit two's-complement deltas are assembled from the shared high-nibble
// byte, smart mode is serviced from the shutter bytes, and the optional axis
// swap is applied last.
func (d *Device) decode(buf []byte) Sample {
	if buf[burstMotion]&motionBit == 0 {
		return Sample{}
	}

	x := uint16(buf[burstDeltaXYH]&0xF0)<<4 | uint16(buf[burstDeltaXL])
	y := uint16(buf[burstDeltaXYH]&0x0F)<<8 | uint16(buf[burstDeltaYL])
	dx := signExtend12(x)
	dy := signExtend12(y)

	if d.cfg.SmartMode && len(buf) >= burstSizeExtended {
		shutter := uint16(buf[burstShutterHi])<<8 | uint16(buf[burstShutterLo])
		d.updateSmartMode(shutter)
	}

	if d.cfg.SwapXY {
		dx, dy = dy, dx
	}
	return Sample{DX: dx, DY: dy}
}

// updateSmartMode toggles the sensor's sensitivity from the shutter value.
// The register write happens at most once per threshold crossing; repeated
// samples on the same side perform no bus traffic.
func (d *Device) updateSmartMode(shutter uint16) {
	switch {
	case d.smartLow && shutter < shutterThreshold:
		d.setSPIClock(true)
		d.bus.WriteRegister(regSmartMode, smartNormal)
		d.setSPIClock(false)
		d.smartLow = false
	case !d.smartLow && shutter > shutterThreshold:
		d.setSPIClock(true)
		d.bus.WriteRegister(regSmartMode, smartLowered)
		d.setSPIClock(false)
		d.smartLow = true
	}
}

// signExtend12 reinterprets a 12-bit unsigned field as a signed value by
// propagating bit 11.
func signExtend12(v uint16) int16 {
	v &= 0x0FFF
	if v >= 0x0800 {
		return int16(v) - 0x1000
	}
	return int16(v)
}
