package classify

import "github.com/probelab/lanscope/internal/shared/types"

// Matrix returns the static support table rendered by the demo's support
// panel. Rows are in the classifier's priority order.
func Matrix() []types.SupportThreshold {
	return []types.SupportThreshold{
		{
			Family:     "Edge",
			Keywords:   []string{"Edge", "Edg"},
			MinVersion: edgeMinMajor,
			Supported:  true,
		},
		{
			Family:     "Chrome",
			Keywords:   []string{"Chrome", "Chromium"},
			MinVersion: chromeMinMajor,
			Supported:  true,
		},
		{
			Family:    "Firefox",
			Keywords:  []string{"Firefox"},
			Supported: false,
			Note:      "has not shipped the feature",
		},
		{
			Family:    "Safari",
			Keywords:  []string{"Safari"},
			Supported: false,
			Note:      "has not shipped the feature",
		},
	}
}
