package types

import "time"

// PermissionState represents the normalized permission state
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionPrompt  PermissionState = "prompt"
	PermissionDenied  PermissionState = "denied"
	// PermissionUnknown is the zero state before the first refresh.
	PermissionUnknown PermissionState = "unknown"
)

// SupportAssessment reports whether the permission-query capability was
// usable, and why not when it wasn't. Supported false means the capability
// was absent or rejected the permission name, not that the user declined.
type SupportAssessment struct {
	Supported bool            `json:"supported"`
	Reason    string          `json:"reason,omitempty"`
	Verdict   *BrowserVerdict `json:"verdict,omitempty"`
}

// PermissionSnapshot is the system's belief about the local-network-access
// permission at one instant. Always wholly replaced, never partially
// mutated; owned by the permission reader and handed to callers read-only.
type PermissionSnapshot struct {
	State         PermissionState   `json:"state"`
	SecureContext bool              `json:"secure_context"`
	Support       SupportAssessment `json:"support"`
	CheckedAt     time.Time         `json:"checked_at"`
}

// Known reports whether a refresh has produced this snapshot, as opposed
// to the zero "not yet known" value.
func (s PermissionSnapshot) Known() bool {
	return s.State != "" && s.State != PermissionUnknown
}

// ClientReport is what the demo page tells the gateway about its host
// environment: the raw permission-query result plus identity and the
// secure-context flag. The gateway never talks to the browser APIs itself,
// so normalization works from this report.
type ClientReport struct {
	UserAgent      string `json:"user_agent,omitempty"`
	BrowserName    string `json:"browser_name,omitempty"`
	BrowserVersion string `json:"browser_version,omitempty"`
	SecureContext  bool   `json:"secure_context"`
	// APIAvailable is the capability-detection result for
	// navigator.permissions.query.
	APIAvailable bool `json:"api_available"`
	// QueryError carries the rejection message when the capability exists
	// but did not recognize the local-network-access permission name.
	QueryError string `json:"query_error,omitempty"`
	// State is the reported permission state on the success path.
	State PermissionState `json:"state,omitempty"`
}
