package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/probelab/lanscope/internal/shared/types"
)

// Minimum major versions that ship the local-network-access permission.
const (
	chromeMinMajor = 142
	edgeMinMajor   = 143
)

// Classify maps a browser display name and raw version string to a
// likely-support verdict. Matching is case-sensitive substring containment
// in fixed priority order; Edge keywords are checked before Chrome ones so
// an Edge identity that also contains "Chrome" resolves as Edge. Every
// input maps to a verdict, there is no failure path.
func Classify(name, version string) types.BrowserVerdict {
	major := parseMajor(version)
	verdict := types.BrowserVerdict{Name: name, Version: major}

	switch {
	case strings.Contains(name, "Edge") || strings.Contains(name, "Edg"):
		if major >= edgeMinMajor {
			verdict.LikelySupported = true
			verdict.Reason = fmt.Sprintf("%s %d supports local network access (Edge %d+)", name, major, edgeMinMajor)
		} else {
			verdict.Reason = fmt.Sprintf("%s %d is too old for local network access (requires Edge %d+)", name, major, edgeMinMajor)
		}

	case strings.Contains(name, "Chrome") || strings.Contains(name, "Chromium"):
		if major >= chromeMinMajor {
			verdict.LikelySupported = true
			verdict.Reason = fmt.Sprintf("%s %d supports local network access (Chrome %d+)", name, major, chromeMinMajor)
		} else {
			verdict.Reason = fmt.Sprintf("%s %d is too old for local network access (requires Chrome %d+)", name, major, chromeMinMajor)
		}

	case strings.Contains(name, "Firefox"):
		verdict.Reason = fmt.Sprintf("%s %d does not support local network access (Firefox has not shipped the feature)", name, major)

	case strings.Contains(name, "Safari"):
		verdict.Reason = fmt.Sprintf("%s %d does not support local network access (Safari has not shipped the feature)", name, major)

	default:
		verdict.Reason = fmt.Sprintf("%s %d is not recognized as supporting local network access; use Chrome %d+ or Edge %d+", name, major, chromeMinMajor, edgeMinMajor)
	}

	return verdict
}

// ClassifyIdentity is Classify over a BrowserIdentity.
func ClassifyIdentity(ident types.BrowserIdentity) types.BrowserVerdict {
	return Classify(ident.Name, ident.Version)
}

// Family buckets a browser name into a small label set for metrics. Uses
// the same keyword priority as Classify.
func Family(name string) string {
	switch {
	case strings.Contains(name, "Edge") || strings.Contains(name, "Edg"):
		return "edge"
	case strings.Contains(name, "Chrome") || strings.Contains(name, "Chromium"):
		return "chrome"
	case strings.Contains(name, "Firefox"):
		return "firefox"
	case strings.Contains(name, "Safari"):
		return "safari"
	default:
		return "other"
	}
}

// parseMajor extracts the integer major version. Non-numeric input yields 0
// rather than an error.
func parseMajor(version string) int {
	head := strings.TrimSpace(version)
	if i := strings.IndexByte(head, '.'); i >= 0 {
		head = head[:i]
	}
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return major
}
