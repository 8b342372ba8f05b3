package main

import (
	"context"
	"fmt"

	"motioncode-go/bus"
	"motioncode-go/drivers/pmw3610"
	"motioncode-go/services/config"
	"motioncode-go/services/heartbeat"
	"motioncode-go/services/pointer"
	"motioncode-go/types"
)

// Host-side end-to-end demo: full service spine over a simulated sensor.
// On hardware targets see cmd/trackball-demo.

func main() {
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "sim")

	b := bus.NewBus(16)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	sim := newSimSensor()
	pointer.NewService("trackball", sim, pmw3610.SleepDelayer{}, nil).
		Start(ctx, b.NewConnection("pointer"))

	ui := b.NewConnection("ui")
	events := ui.Subscribe(bus.T("input", "cap", "pointer", "trackball", "event", "motion"))
	status := ui.Subscribe(bus.T("input", "cap", "pointer", "trackball", "status"))

	for {
		select {
		case m := <-events.Channel():
			ev := m.Payload.(types.MotionEvent)
			fmt.Printf("motion dx=%d dy=%d\n", ev.DX, ev.DY)
		case m := <-status.Channel():
			st := m.Payload.(types.CapabilityStatus)
			fmt.Printf("status link=%s err=%q\n", st.Link, st.Error)
		}
	}
}

// -----------------------------------------------------------------------------
// Simulated sensor (register-level model)
// -----------------------------------------------------------------------------

// simSensor models just enough of the register protocol to bring the driver
// up and feed it a repeating displacement pattern.
type simSensor struct {
	observation uint8
	step        int
}

func newSimSensor() *simSensor { return &simSensor{} }

var simPath = [][2]int16{
	{4, 0}, {3, 3}, {0, 4}, {-3, 3}, {-4, 0}, {-3, -3}, {0, -4}, {3, -3},
}

func (s *simSensor) ReadRegister(addr uint8) uint8 {
	switch addr {
	case 0x00: // product id
		return 0x3E
	case 0x2D: // observation self-test
		return s.observation
	default:
		return 0
	}
}

func (s *simSensor) WriteRegister(addr, value uint8) {
	if addr == 0x2D {
		// Self-test bits latch after the clearing write.
		s.observation = 0x0F
	}
}

func (s *simSensor) BurstRead(addr uint8, buf []byte) {
	d := simPath[s.step%len(simPath)]
	s.step++

	x := uint16(d[0]) & 0x0FFF
	y := uint16(d[1]) & 0x0FFF
	buf[0] = 0x80 // motion pending
	buf[1] = byte(x)
	buf[2] = byte(y)
	buf[3] = byte((x>>8)<<4) | byte((y>>8)&0x0F)
	for i := 4; i < len(buf); i++ {
		buf[i] = 0
	}
}
