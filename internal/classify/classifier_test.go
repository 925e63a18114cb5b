package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVersionThresholds(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		supported bool
	}{
		{"Chrome", "141", false},
		{"Chrome", "142", true},
		{"Chrome", "143", true},
		{"Chromium", "141", false},
		{"Chromium", "142", true},
		{"Edge", "142", false},
		{"Edge", "143", true},
		{"Edg", "143", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.name, tt.version), func(t *testing.T) {
			verdict := Classify(tt.name, tt.version)
			assert.Equal(t, tt.supported, verdict.LikelySupported)
			assert.Equal(t, tt.name, verdict.Name)
			assert.NotEmpty(t, verdict.Reason)
		})
	}
}

func TestClassifyEdgeBeforeChrome(t *testing.T) {
	// An Edge identity that also contains "Chrome" must be resolved against
	// the Edge threshold, not the Chrome one.
	verdict := Classify("Edge (Chrome based)", "142")
	assert.False(t, verdict.LikelySupported)
	assert.Contains(t, verdict.Reason, "Edge 143+")

	verdict = Classify("Edge (Chrome based)", "143")
	assert.True(t, verdict.LikelySupported)
}

func TestClassifyNeverSupported(t *testing.T) {
	t.Run("firefox", func(t *testing.T) {
		verdict := Classify("Firefox", "145")
		assert.False(t, verdict.LikelySupported)
		assert.NotEmpty(t, verdict.Reason)
		assert.Contains(t, verdict.Reason, "Firefox")
		assert.Contains(t, verdict.Reason, "145")
	})

	t.Run("safari", func(t *testing.T) {
		verdict := Classify("Safari", "26")
		assert.False(t, verdict.LikelySupported)
		assert.NotEmpty(t, verdict.Reason)
		assert.Contains(t, verdict.Reason, "Safari")
	})

	t.Run("unrecognized", func(t *testing.T) {
		verdict := Classify("NetFront", "4")
		assert.False(t, verdict.LikelySupported)
		assert.Contains(t, verdict.Reason, "NetFront")
		assert.Contains(t, verdict.Reason, "Chrome 142+")
		assert.Contains(t, verdict.Reason, "Edge 143+")
	})
}

func TestClassifyCaseSensitive(t *testing.T) {
	// Substring matching is case-sensitive: "chrome" is not "Chrome".
	verdict := Classify("chrome", "150")
	assert.False(t, verdict.LikelySupported)
	assert.Contains(t, verdict.Reason, "chrome")
}

func TestClassifyVersionParsing(t *testing.T) {
	tests := []struct {
		version string
		want    int
	}{
		{"142", 142},
		{"142.0.7444.12", 142},
		{" 143 ", 143},
		{"abc", 0},
		{"", 0},
		{"14x", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("version_%q", tt.version), func(t *testing.T) {
			verdict := Classify("Chrome", tt.version)
			assert.Equal(t, tt.want, verdict.Version)
		})
	}

	// Non-numeric input degrades to version 0, which is below threshold.
	assert.False(t, Classify("Chrome", "abc").LikelySupported)
}

func TestClassifyReasonEmbedsIdentity(t *testing.T) {
	verdict := Classify("Chrome", "142")
	assert.Contains(t, verdict.Reason, "Chrome")
	assert.Contains(t, verdict.Reason, "142")

	verdict = Classify("Edge", "100")
	assert.Contains(t, verdict.Reason, "Edge")
	assert.Contains(t, verdict.Reason, "100")
}

func TestClassifyIdentity(t *testing.T) {
	verdict := ClassifyIdentity(identityOf("Chrome", "142"))
	assert.True(t, verdict.LikelySupported)
}

func TestFamily(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Edge", "edge"},
		{"Edge (Chrome based)", "edge"},
		{"Chrome", "chrome"},
		{"Chromium", "chrome"},
		{"Firefox", "firefox"},
		{"Safari", "safari"},
		{"NetFront", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Family(tt.name), "family of %q", tt.name)
	}
}

func TestMatrix(t *testing.T) {
	matrix := Matrix()
	assert.Len(t, matrix, 4)

	// Edge outranks Chrome in priority order.
	assert.Equal(t, "Edge", matrix[0].Family)
	assert.Equal(t, 143, matrix[0].MinVersion)
	assert.Equal(t, "Chrome", matrix[1].Family)
	assert.Equal(t, 142, matrix[1].MinVersion)

	for _, row := range matrix[2:] {
		assert.False(t, row.Supported)
		assert.NotEmpty(t, row.Note)
	}
}
