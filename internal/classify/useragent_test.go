package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/probelab/lanscope/internal/shared/types"
)

func identityOf(name, version string) types.BrowserIdentity {
	return types.BrowserIdentity{Name: name, Version: version}
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		label string
		ua    string
		want  types.BrowserIdentity
	}{
		{
			label: "chrome",
			ua:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.7444.30 Safari/537.36",
			want:  identityOf("Chrome", "142.0.7444.30"),
		},
		{
			label: "edge carries a chrome token",
			ua:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/143.0.0.0 Safari/537.36 Edg/143.0.1234.56",
			want:  identityOf("Edge", "143.0.1234.56"),
		},
		{
			label: "chromium",
			ua:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chromium/141.0.0.0 Chrome/141.0.0.0 Safari/537.36",
			want:  identityOf("Chromium", "141.0.0.0"),
		},
		{
			label: "firefox",
			ua:    "Mozilla/5.0 (X11; Linux x86_64; rv:145.0) Gecko/20100101 Firefox/145.0",
			want:  identityOf("Firefox", "145.0"),
		},
		{
			label: "safari",
			ua:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/26.0 Safari/605.1.15",
			want:  identityOf("Safari", "26.0"),
		},
		{
			label: "opera",
			ua:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36 OPR/128.0.0.0",
			want:  identityOf("Opera", "128.0.0.0"),
		},
		{
			label: "bare product token",
			ua:    "curl/8.5.0",
			want:  identityOf("curl", "8.5.0"),
		},
		{
			label: "no product token",
			ua:    "somebot",
			want:  identityOf("somebot", ""),
		},
		{
			label: "empty",
			ua:    "",
			want:  identityOf("Unknown", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserAgent(tt.ua))
		})
	}
}

func TestParseUserAgentFeedsClassifier(t *testing.T) {
	// The sniffed Edge identity must clear the Edge threshold, not Chrome's.
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36 Edg/142.0.0.0"
	verdict := ClassifyIdentity(ParseUserAgent(ua))
	assert.Equal(t, "Edge", verdict.Name)
	assert.False(t, verdict.LikelySupported)
}
