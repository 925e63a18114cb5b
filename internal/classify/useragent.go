package classify

import (
	"strings"

	"github.com/probelab/lanscope/internal/shared/types"
)

// uaMarkers are product tokens in detection order. Edge and Chromium come
// before Chrome because their user agents also carry a "Chrome/" token.
var uaMarkers = []struct {
	marker string
	name   string
}{
	{"Edg/", "Edge"},
	{"EdgA/", "Edge"},
	{"OPR/", "Opera"},
	{"Chromium/", "Chromium"},
	{"Firefox/", "Firefox"},
	{"Chrome/", "Chrome"},
}

// ParseUserAgent derives a browser identity from a raw User-Agent header.
// Used when the demo page has not reported an explicit name and version.
func ParseUserAgent(ua string) types.BrowserIdentity {
	for _, m := range uaMarkers {
		if i := strings.Index(ua, m.marker); i >= 0 {
			return types.BrowserIdentity{Name: m.name, Version: versionAt(ua, i+len(m.marker))}
		}
	}

	// Safari carries its version in a separate "Version/" token.
	if strings.Contains(ua, "Safari/") {
		ident := types.BrowserIdentity{Name: "Safari"}
		if i := strings.Index(ua, "Version/"); i >= 0 {
			ident.Version = versionAt(ua, i+len("Version/"))
		}
		return ident
	}

	// Fall back to the first product token.
	if fields := strings.Fields(ua); len(fields) > 0 {
		if name, version, ok := strings.Cut(fields[0], "/"); ok {
			return types.BrowserIdentity{Name: name, Version: version}
		}
		return types.BrowserIdentity{Name: fields[0]}
	}

	return types.BrowserIdentity{Name: "Unknown"}
}

// versionAt reads the dotted version number starting at offset start.
func versionAt(ua string, start int) string {
	end := start
	for end < len(ua) {
		c := ua[end]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		end++
	}
	return ua[start:end]
}
