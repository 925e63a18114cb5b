package probe

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Private-Network", "true")
	h.Set("Private-Network-Access-Name", "demo-device")
	h.Set("X-Powered-By", "test")

	entries := FilterHeaders(h)
	require.Len(t, entries, 3)

	// Sorted canonical order keeps the list deterministic.
	assert.Equal(t, "Access-Control-Allow-Origin", entries[0].Name)
	assert.Equal(t, "*", entries[0].Value)
	assert.Equal(t, "Access-Control-Allow-Private-Network", entries[1].Name)
	assert.Equal(t, "true", entries[1].Value)
	assert.Equal(t, "Private-Network-Access-Name", entries[2].Name)
	assert.Equal(t, "demo-device", entries[2].Value)

	for _, e := range entries {
		assert.NotEqual(t, "Content-Type", e.Name)
		assert.NotEqual(t, "X-Powered-By", e.Name)
	}
}

func TestFilterHeadersMultiValue(t *testing.T) {
	h := http.Header{}
	h.Add("Access-Control-Expose-Headers", "Private-Network-Access-Name")
	h.Add("Access-Control-Expose-Headers", "Private-Network-Access-ID")

	entries := FilterHeaders(h)
	require.Len(t, entries, 1)
	assert.Equal(t, "Private-Network-Access-Name, Private-Network-Access-ID", entries[0].Value)
}

func TestFilterHeadersEmpty(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "text/plain")
	h.Set("Date", "Mon, 02 Jan 2006 15:04:05 GMT")

	assert.Empty(t, FilterHeaders(h))
}

func TestDecodeJSON(t *testing.T) {
	decoded := Decode([]byte(`{"status":"ok","count":3}`), "application/json")

	body, ok := decoded.Body.(map[string]interface{})
	require.True(t, ok, "JSON body should decode to a map")
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "application/json", decoded.ContentType)
}

func TestDecodeInvalidJSONFallsBackToText(t *testing.T) {
	decoded := Decode([]byte(`{not json`), "application/json; charset=utf-8")

	body, ok := decoded.Body.(string)
	require.True(t, ok, "unparseable JSON should fall back to text")
	assert.Equal(t, `{not json`, body)
}

func TestDecodeHTML(t *testing.T) {
	page := `<html><head><title>Router Admin</title></head><body><script>evil()</script><p>Status: up</p></body></html>`
	decoded := Decode([]byte(page), "text/html; charset=utf-8")

	assert.Equal(t, "Router Admin", decoded.Title)
	assert.Contains(t, decoded.Preview, "Status: up")
	assert.NotContains(t, decoded.Preview, "<script>")
	assert.NotContains(t, decoded.Preview, "evil()")

	body, ok := decoded.Body.(string)
	require.True(t, ok)
	assert.Contains(t, body, "<p>Status: up</p>")
}

func TestDecodeSniffsMissingContentType(t *testing.T) {
	decoded := Decode([]byte(`{"sniffed": true}`), "")

	assert.Contains(t, decoded.ContentType, "json")
	body, ok := decoded.Body.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, body["sniffed"])
}

func TestDecodePlainText(t *testing.T) {
	decoded := Decode([]byte("hello device"), "text/plain")

	assert.Equal(t, "hello device", decoded.Body)
	assert.Empty(t, decoded.Title)
	assert.Empty(t, decoded.Preview)
}

func TestDecodeEmptyBody(t *testing.T) {
	decoded := Decode(nil, "")

	assert.Equal(t, "", decoded.Body)
	assert.Empty(t, decoded.ContentType)
}

func TestDetectCharset(t *testing.T) {
	assert.NotEmpty(t, DetectCharset([]byte("plain ascii text, long enough to sample")))
	assert.Equal(t, "utf-8", DetectCharset(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longer text", 6))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", normalizeWhitespace("  a \n\t b   c  "))
}
