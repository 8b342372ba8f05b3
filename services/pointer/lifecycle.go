package pointer

// Bring-up lifecycle for the motion sensor. The state is owned exclusively
// by the producer goroutine; Ready and Failed are absorbing with respect to
// automatic retries.

type State uint8

const (
	StatePending State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	maxInitAttempts = 3
	initBackoffMs   = 200
)

// Lifecycle tracks bring-up attempts against the retry bound.
type Lifecycle struct {
	state    State
	attempts int
}

func (l *Lifecycle) State() State  { return l.state }
func (l *Lifecycle) Attempts() int { return l.attempts }

// next is the pure transition function: given the current state, the attempt
// count and the attempt outcome, it returns the new state, the new count and
// whether a backoff wait is due before the next attempt.
func next(s State, attempts int, ok bool) (State, int, bool) {
	if s == StateReady || s == StateFailed {
		return s, attempts, false
	}
	if ok {
		return StateReady, attempts, false
	}
	attempts++
	if attempts >= maxInitAttempts {
		return StateFailed, attempts, false
	}
	return StateInitializing, attempts, true
}

// Step drives one lifecycle transition. In Pending it moves to Initializing
// and runs the first attempt immediately; in Initializing it runs the next
// attempt; in Ready or Failed it does nothing. A failed attempt below the
// bound incurs one backoff wait; reaching the bound parks the lifecycle in
// Failed with no further attempts ever made.
func (l *Lifecycle) Step(attempt func() error, wait func(ms uint32)) (State, error) {
	switch l.state {
	case StateReady, StateFailed:
		return l.state, nil
	case StatePending:
		l.state = StateInitializing
		l.attempts = 0
	}

	err := attempt()
	s, n, backoff := next(l.state, l.attempts, err == nil)
	l.state, l.attempts = s, n
	if backoff {
		wait(initBackoffMs)
	}
	return l.state, err
}
