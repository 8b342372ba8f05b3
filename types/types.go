package types

// ------------------------
// Capability addressing & kinds
// ------------------------

type Kind string

const (
	KindPointer Kind = "pointer"
	KindButton  Kind = "button"
	KindLED     Kind = "led"
)

// CapabilityAddress identifies a public capability on the bus.
type CapabilityAddress struct {
	Domain string `json:"domain"` // e.g. "input"
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
}

// Segments returns the capability's bus topic path,
// <domain>/cap/<kind>/<name>. Sub-topics append onto the returned slice.
func (a CapabilityAddress) Segments() []string {
	return []string{a.Domain, "cap", string(a.Kind), a.Name}
}

// ------------------------
// Capability link status
// ------------------------

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ms"`           // Unix ms
	Error string `json:"error,omitempty"` // machine-readable short code
}

// ------------------------
// Motion events
// ------------------------

// MotionEvent is one pointer displacement report. Deltas are clamped to the
// 8-bit signed range before emission; a zero/zero event is never published.
type MotionEvent struct {
	DX int8  `json:"dx"`
	DY int8  `json:"dy"`
	TS int64 `json:"ts_ms"` // producer timestamp (ms)
}
