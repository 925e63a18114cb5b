package probe

import (
	"bytes"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"

	"github.com/probelab/lanscope/internal/shared/types"
)

// previewLimit caps the sanitized HTML preview shown in the response panel.
const previewLimit = 512

// sanitizer strips markup from HTML bodies before previewing. Shared; the
// policy is immutable after construction.
var sanitizer = bluemonday.UGCPolicy()

// FilterHeaders keeps only the response headers of interest: those whose
// lowercased name contains "private-network" or "access-control". Keys are
// emitted in sorted canonical order so the result is deterministic, with
// multi-valued headers joined by ", ".
func FilterHeaders(h http.Header) []types.HeaderEntry {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]types.HeaderEntry, 0, 4)
	for _, k := range keys {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "private-network") || strings.Contains(lower, "access-control") {
			entries = append(entries, types.HeaderEntry{
				Name:  k,
				Value: strings.Join(h.Values(k), ", "),
			})
		}
	}
	return entries
}

// Decoded is a probe response body after content-type dispatch.
type Decoded struct {
	Body        interface{}
	ContentType string
	Title       string
	Preview     string
}

// Decode turns a raw response body into the outcome's body value:
// structured data when the content type says JSON, text otherwise. HTML
// additionally yields the document title and a sanitized text preview.
// A missing content type is sniffed from the payload.
func Decode(raw []byte, declared string) Decoded {
	contentType := strings.TrimSpace(declared)
	if contentType == "" && len(raw) > 0 {
		contentType = mimetype.Detect(raw).String()
	}

	decoded := Decoded{ContentType: contentType}
	lower := strings.ToLower(contentType)

	switch {
	case strings.Contains(lower, "json"):
		var v interface{}
		if err := sonic.Unmarshal(raw, &v); err == nil {
			decoded.Body = v
			return decoded
		}
		// Declared JSON that does not parse degrades to text.
		decoded.Body = decodeText(raw, contentType)

	case strings.Contains(lower, "html"):
		text := decodeText(raw, contentType)
		decoded.Body = text
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			decoded.Title = strings.TrimSpace(doc.Find("title").First().Text())
		}
		decoded.Preview = truncate(normalizeWhitespace(sanitizer.Sanitize(text)), previewLimit)

	default:
		decoded.Body = decodeText(raw, contentType)
	}

	return decoded
}

// decodeText converts a body to UTF-8. Router and IoT pages frequently
// serve legacy charsets, so when the content type does not declare one the
// detector's best guess is used as the conversion hint.
func decodeText(raw []byte, contentType string) string {
	hint := contentType
	if !strings.Contains(strings.ToLower(contentType), "charset=") {
		hint = "text/plain; charset=" + DetectCharset(raw)
	}

	utf8Reader, err := charset.NewReader(bytes.NewReader(raw), hint)
	if err != nil {
		return string(raw)
	}
	converted, err := io.ReadAll(utf8Reader)
	if err != nil {
		return string(raw)
	}
	return string(converted)
}

// DetectCharset detects the charset of a byte payload, defaulting to utf-8.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens text to maxLen with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
