package pointer

import (
	"context"
	"errors"
	"time"

	"motioncode-go/bus"
	"motioncode-go/drivers/pmw3610"
	"motioncode-go/errcode"
	"motioncode-go/types"
	"motioncode-go/x/timex"
)

const serviceName = "pointer"

// Topics.
func topicConfig() bus.Topic { return bus.T("config", serviceName) }

func address(name string) types.CapabilityAddress {
	return types.CapabilityAddress{Domain: "input", Kind: types.KindPointer, Name: name}
}

func topicEvent(name string) bus.Topic {
	return bus.Topic(append(address(name).Segments(), "event", "motion"))
}
func topicStatus(name string) bus.Topic {
	return bus.Topic(append(address(name).Segments(), "status"))
}

// Service wires one sensor transport into the bus: it consumes its config
// section, brings the driver up, publishes motion events and keeps a
// retained link status current.
type Service struct {
	Name string

	sensorBus pmw3610.Bus
	dly       pmw3610.Delayer
	motion    pmw3610.InputPin // may be nil
}

// NewService takes an already-built register transport; platform code (or a
// simulator on hosts) owns pin construction.
func NewService(name string, sensorBus pmw3610.Bus, dly pmw3610.Delayer, motion pmw3610.InputPin) *Service {
	return &Service{Name: name, sensorBus: sensorBus, dly: dly, motion: motion}
}

// Start launches the service loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.run(ctx, conn)
}

func (s *Service) run(ctx context.Context, conn *bus.Connection) {
	cfg, interval := s.awaitSettings(ctx, conn)

	dev := pmw3610.New(s.sensorBus, s.dly, cfg)
	events := make(chan types.MotionEvent, 16)
	prod := NewProducer(dev, s.dly, s.motion, interval, events)
	prod.OnState = func(st State, err error) {
		s.publishStatus(conn, st, err)
		if err != nil {
			println("Warn: pointer", s.Name, "bring-up:", err.Error())
		}
	}

	go prod.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			conn.Publish(conn.NewMessage(topicEvent(s.Name), ev, false))
		}
	}
}

// awaitSettings blocks briefly for the retained config section; a missing
// section falls back to device defaults.
func (s *Service) awaitSettings(ctx context.Context, conn *bus.Connection) (pmw3610.Config, time.Duration) {
	sub := conn.Subscribe(topicConfig())
	defer sub.Unsubscribe()

	select {
	case <-ctx.Done():
	case msg := <-sub.Channel():
		if m, ok := msg.Payload.(map[string]any); ok {
			return settingsFrom(m)
		}
	case <-time.After(500 * time.Millisecond):
		println("Info: pointer", s.Name, "no config section, using defaults")
	}
	return pmw3610.Config{}, DefaultPollInterval
}

// settingsFrom decodes the JSON config section. Numbers arrive as float64
// from the parser.
func settingsFrom(m map[string]any) (pmw3610.Config, time.Duration) {
	cfg := pmw3610.Config{}
	if v, ok := m["cpi"].(float64); ok {
		cfg.CPI = int16(v)
	}
	if v, ok := m["invert_x"].(bool); ok {
		cfg.InvertX = v
	}
	if v, ok := m["invert_y"].(bool); ok {
		cfg.InvertY = v
	}
	if v, ok := m["swap_xy"].(bool); ok {
		cfg.SwapXY = v
	}
	if v, ok := m["force_awake"].(bool); ok {
		cfg.ForceAwake = v
	}
	if v, ok := m["smart_mode"].(bool); ok {
		cfg.SmartMode = v
	}
	interval := DefaultPollInterval
	if v, ok := m["poll_interval_ms"].(float64); ok {
		interval = timex.MsToDuration(int(v), DefaultPollInterval)
	}
	return cfg, interval
}

func (s *Service) publishStatus(conn *bus.Connection, st State, err error) {
	status := types.CapabilityStatus{TS: timex.NowMs()}
	switch st {
	case StateReady:
		status.Link = types.LinkUp
	case StateFailed:
		status.Link = types.LinkDown
	default:
		status.Link = types.LinkDegraded
	}
	if c := driverCode(err); c != errcode.OK {
		status.Error = string(c)
	} else if st == StateFailed {
		status.Error = string(errcode.SensorDisabled)
	}
	conn.Publish(conn.NewMessage(topicStatus(s.Name), status, true))
}

// driverCode maps driver errors onto stable bus-facing codes.
func driverCode(err error) errcode.Code {
	switch {
	case err == nil:
		return errcode.OK
	case errors.Is(err, pmw3610.ErrInitFailed):
		return errcode.InitFailed
	case errors.Is(err, pmw3610.ErrInvalidCPI):
		return errcode.InvalidResolution
	}
	var ie pmw3610.IdentityError
	if errors.As(err, &ie) {
		return errcode.WrongDevice
	}
	return errcode.Of(err)
}
