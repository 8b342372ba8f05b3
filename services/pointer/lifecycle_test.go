package pointer

import (
	"errors"
	"testing"
)

var errAttempt = errors.New("bring-up failed")

// stepN drives the lifecycle n times, returning the attempt and backoff
// counts observed.
func stepN(l *Lifecycle, n int, outcomes []error) (attempts int, backoffs []uint32) {
	i := 0
	attempt := func() error {
		var err error
		if i < len(outcomes) {
			err = outcomes[i]
		}
		i++
		attempts++
		return err
	}
	wait := func(ms uint32) { backoffs = append(backoffs, ms) }
	for j := 0; j < n; j++ {
		l.Step(attempt, wait)
	}
	return attempts, backoffs
}

func TestLifecycleFirstAttemptSuccess(t *testing.T) {
	var l Lifecycle
	attempts, backoffs := stepN(&l, 1, []error{nil})

	if l.State() != StateReady {
		t.Fatalf("state = %v, want ready", l.State())
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if len(backoffs) != 0 {
		t.Errorf("backoffs = %v, want none", backoffs)
	}
}

func TestLifecycleBoundedRetry(t *testing.T) {
	var l Lifecycle
	attempts, backoffs := stepN(&l, 3, []error{errAttempt, errAttempt, nil})

	if l.State() != StateReady {
		t.Fatalf("state = %v, want ready", l.State())
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if len(backoffs) != 2 {
		t.Fatalf("backoffs = %v, want exactly 2", backoffs)
	}
	for _, ms := range backoffs {
		if ms != initBackoffMs {
			t.Errorf("backoff = %dms, want %dms", ms, initBackoffMs)
		}
	}
}

func TestLifecycleTerminalFailure(t *testing.T) {
	var l Lifecycle
	// Far more steps than the bound; attempts must stop at the bound.
	attempts, backoffs := stepN(&l, 10, []error{errAttempt, errAttempt, errAttempt, errAttempt})

	if l.State() != StateFailed {
		t.Fatalf("state = %v, want failed", l.State())
	}
	if attempts != maxInitAttempts {
		t.Errorf("attempts = %d, want %d", attempts, maxInitAttempts)
	}
	// The final failing attempt transitions straight to Failed, no backoff.
	if len(backoffs) != maxInitAttempts-1 {
		t.Errorf("backoffs = %v, want %d", backoffs, maxInitAttempts-1)
	}
}

func TestLifecycleReadyIsAbsorbing(t *testing.T) {
	var l Lifecycle
	attempts, _ := stepN(&l, 5, []error{nil, errAttempt, errAttempt})
	if l.State() != StateReady {
		t.Fatalf("state = %v, want ready", l.State())
	}
	if attempts != 1 {
		t.Errorf("attempts after ready = %d, want 1", attempts)
	}
}

func TestNextTransitions(t *testing.T) {
	cases := []struct {
		name        string
		s           State
		attempts    int
		ok          bool
		wantState   State
		wantBackoff bool
	}{
		{"init success", StateInitializing, 0, true, StateReady, false},
		{"init failure below bound", StateInitializing, 0, false, StateInitializing, true},
		{"init failure at bound", StateInitializing, maxInitAttempts - 1, false, StateFailed, false},
		{"ready absorbs", StateReady, 0, false, StateReady, false},
		{"failed absorbs", StateFailed, maxInitAttempts, true, StateFailed, false},
	}
	for _, tc := range cases {
		s, _, backoff := next(tc.s, tc.attempts, tc.ok)
		if s != tc.wantState || backoff != tc.wantBackoff {
			t.Errorf("%s: next(%v,%d,%v) = (%v,backoff=%v), want (%v,%v)",
				tc.name, tc.s, tc.attempts, tc.ok, s, backoff, tc.wantState, tc.wantBackoff)
		}
	}
}
