package pointer

import (
	"context"
	"time"

	"motioncode-go/drivers/pmw3610"
	"motioncode-go/types"
	"motioncode-go/x/mathx"
	"motioncode-go/x/timex"
)

// DefaultPollInterval paces the producer when the config supplies none.
const DefaultPollInterval = 8 * time.Millisecond

// Producer owns one sensor exclusively and turns it into a stream of motion
// events. It is one of potentially several concurrently scheduled producers
// feeding a shared sink; it runs until its context is torn down and has no
// cancellation semantics of its own beyond that.
type Producer struct {
	dev    *pmw3610.Device
	dly    pmw3610.Delayer
	motion pmw3610.InputPin // optional active-low motion line; nil = always pending

	lc       Lifecycle
	interval time.Duration
	sink     chan<- types.MotionEvent

	// OnState, when set, observes lifecycle state changes together with the
	// error that caused them (nil on success). Called from the producer
	// goroutine.
	OnState func(State, error)

	notified State
}

func NewProducer(dev *pmw3610.Device, dly pmw3610.Delayer, motion pmw3610.InputPin,
	interval time.Duration, sink chan<- types.MotionEvent) *Producer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Producer{dev: dev, dly: dly, motion: motion, interval: interval, sink: sink}
}

// State reports the current lifecycle state.
func (p *Producer) State() State { return p.lc.State() }

// Run polls at a fixed cadence regardless of driver state until ctx is done.
func (p *Producer) Run(ctx context.Context) {
	tick := time.NewTicker(p.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			p.Tick()
		}
	}
}

// Tick performs one poll cycle: drive bring-up if not Ready, gate on the
// motion line, read and decode one burst, and emit a clamped non-zero
// sample. A Failed sensor keeps its polling slot but produces nothing.
func (p *Producer) Tick() {
	if p.lc.State() != StateReady {
		st, err := p.lc.Step(p.dev.Configure, p.dly.DelayMs)
		p.notify(st, err)
		if st != StateReady {
			return
		}
	}

	// Motion line is active-low; skip the tick while it idles high.
	if p.motion != nil && p.motion.Get() {
		return
	}

	s := p.dev.ReadMotion()
	if s.IsZero() {
		return
	}

	ev := types.MotionEvent{
		DX: int8(mathx.Clamp(s.DX, -128, 127)),
		DY: int8(mathx.Clamp(s.DY, -128, 127)),
		TS: timex.NowMs(),
	}
	select {
	case p.sink <- ev:
	default:
		// Motion deltas are disposable; never stall the poll cadence.
	}
}

func (p *Producer) notify(st State, err error) {
	if p.OnState == nil {
		return
	}
	if st != p.notified || err != nil {
		p.notified = st
		p.OnState(st, err)
	}
}
