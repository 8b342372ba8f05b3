package pmw3610

import (
	"tinygo.org/x/drivers"
)

// SPIBus adapts a hardware SPI peripheral to the register-bus contract for
// boards that tie MOSI and MISO together through a series resistor and run
// the sensor from a real SPI block instead of bit-banged GPIOs. The
// chip-select stays under driver control because the inter-phase delays are
// longer than any hardware CS timing.
//
// Tx errors are swallowed to honour the Bus contract: like the bit-bang
// transport, this layer cannot surface electrical faults, and the
// initialization checks above it are the only line of defence.
type SPIBus struct {
	SPI drivers.SPI
	CS  OutputPin
	Dly Delayer

	buf [2]byte
}

func NewSPIBus(spi drivers.SPI, cs OutputPin, dly Delayer) *SPIBus {
	cs.High()
	return &SPIBus{SPI: spi, CS: cs, Dly: dly}
}

func (s *SPIBus) ReadRegister(addr uint8) uint8 {
	s.CS.Low()
	s.Dly.DelayUs(tNCSSCLK)
	_, _ = s.SPI.Transfer(addr &^ writeMarker)
	s.Dly.DelayUs(tSRAD)
	v, _ := s.SPI.Transfer(0x00)
	s.Dly.DelayUs(tSRX)
	s.CS.High()
	s.Dly.DelayUs(tSRX)
	return v
}

func (s *SPIBus) WriteRegister(addr, value uint8) {
	s.buf[0] = addr | writeMarker
	s.buf[1] = value
	s.CS.Low()
	s.Dly.DelayUs(tNCSSCLK)
	_ = s.SPI.Tx(s.buf[:2], nil)
	s.Dly.DelayUs(tSWW)
	s.CS.High()
	s.Dly.DelayUs(tSWR)
}

func (s *SPIBus) BurstRead(addr uint8, buf []byte) {
	s.CS.Low()
	s.Dly.DelayUs(tNCSSCLK)
	_, _ = s.SPI.Transfer(addr &^ writeMarker)
	s.Dly.DelayUs(tSRAD)
	for i := range buf {
		buf[i], _ = s.SPI.Transfer(0x00)
		s.Dly.DelayUs(tSRX)
	}
	s.CS.High()
	s.Dly.DelayUs(tBEXIT)
}
