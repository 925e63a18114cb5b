package types

// BrowserIdentity is a browser display name plus its raw version string,
// either reported explicitly by the demo page or sniffed from a User-Agent.
type BrowserIdentity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// BrowserVerdict is the classifier's likely-support assessment for one
// browser identity. Derived once per permission refresh; immutable.
type BrowserVerdict struct {
	Name            string `json:"name"`
	Version         int    `json:"version"`
	LikelySupported bool   `json:"likely_supported"`
	Reason          string `json:"reason,omitempty"`
}

// SupportThreshold is one row of the static support matrix: the minimum
// major version at which a browser family ships local network access.
type SupportThreshold struct {
	Family     string   `json:"family"`
	Keywords   []string `json:"keywords"`
	MinVersion int      `json:"min_version"`
	Supported  bool     `json:"supported"`
	Note       string   `json:"note,omitempty"`
}
