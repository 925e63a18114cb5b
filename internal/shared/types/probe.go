package types

import "time"

// ProbePhase represents the probe lifecycle state
type ProbePhase string

const (
	PhaseIdle      ProbePhase = "idle"
	PhasePending   ProbePhase = "pending"
	PhaseSucceeded ProbePhase = "succeeded"
	PhaseFailed    ProbePhase = "failed"
)

// Terminal reports whether the phase is a completion state.
func (p ProbePhase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// HeaderEntry is one response header of interest. Headers are carried as an
// ordered list because JSON objects do not preserve order.
type HeaderEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RequestOutcome is the single probe slot's state. Exactly one exists per
// lifecycle; it is wholly replaced on every transition. Body and Headers are
// populated only in the succeeded phase, Message only in the failed phase.
type RequestOutcome struct {
	Phase    ProbePhase    `json:"phase"`
	Body     interface{}   `json:"body,omitempty"`
	Headers  []HeaderEntry `json:"headers,omitempty"`
	Message  string        `json:"message,omitempty"`
	Sequence uint64        `json:"sequence"`

	// Request echo and diagnostics. None of these affect the phase
	// semantics above.
	URL          string       `json:"url,omitempty"`
	AddressSpace AddressSpace `json:"address_space,omitempty"`
	StatusCode   int          `json:"status_code,omitempty"`
	ContentType  string       `json:"content_type,omitempty"`
	Title        string       `json:"title,omitempty"`
	Preview      string       `json:"preview,omitempty"`
	ResolvedZone AddressSpace `json:"resolved_zone,omitempty"`
	HintNote     string       `json:"hint_note,omitempty"`
	DurationMS   float64      `json:"duration_ms,omitempty"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}

// IdleOutcome is the lifecycle's rest state.
func IdleOutcome(seq uint64) RequestOutcome {
	return RequestOutcome{Phase: PhaseIdle, Sequence: seq}
}

// ProbeRequest is a probe submission from the demo page or API caller.
type ProbeRequest struct {
	URL          string       `json:"url" binding:"required"`
	AddressSpace AddressSpace `json:"address_space"`
}
