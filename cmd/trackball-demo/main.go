// cmd/trackball-demo/main.go
//go:build rp2040

package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"motioncode-go/bus"
	"motioncode-go/drivers/pmw3610"
	"motioncode-go/services/config"
	"motioncode-go/services/pointer"
	"motioncode-go/types"
	"motioncode-go/x/conv"
)

// Pin assignment for the trackball breakout on a Pico.
const (
	pinCS     = machine.GP13
	pinSCLK   = machine.GP14
	pinSDIO   = machine.GP15
	pinMotion = machine.GP16
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(1500 * time.Millisecond)
	println("[trackball] boot …")

	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "split-right")
	b := bus.NewBus(8)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	transport := pmw3610.NewThreeWire(
		pmw3610.OutputOf(pinCS),
		pmw3610.OutputOf(pinSCLK),
		pmw3610.BidiOf(pinSDIO),
		pmw3610.SleepDelayer{},
	)
	motion := pmw3610.InputOf(pinMotion)
	pointer.NewService("trackball", transport, pmw3610.SleepDelayer{}, motion).
		Start(ctx, b.NewConnection("pointer"))

	ui := b.NewConnection("ui")
	events := ui.Subscribe(bus.T("input", "cap", "pointer", "trackball", "event", "motion"))
	status := ui.Subscribe(bus.T("input", "cap", "pointer", "trackball", "status"))

	var num [8]byte
	for {
		select {
		case m := <-events.Channel():
			ev := m.Payload.(types.MotionEvent)
			_, _ = uartx.UART0.Write([]byte("dx="))
			_, _ = uartx.UART0.Write(conv.Itoa(num[:], int64(ev.DX)))
			_, _ = uartx.UART0.Write([]byte(" dy="))
			_, _ = uartx.UART0.Write(conv.Itoa(num[:], int64(ev.DY)))
			_, _ = uartx.UART0.Write([]byte("\r\n"))
		case m := <-status.Channel():
			st := m.Payload.(types.CapabilityStatus)
			_, _ = uartx.UART0.Write([]byte("link=" + string(st.Link) + " " + st.Error + "\r\n"))
		}
	}
}
