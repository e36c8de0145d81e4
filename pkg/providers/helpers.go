package providers

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// responseSnippet returns a truncated snippet of the response body for logging.
// The cut never splits a UTF-8 sequence.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// encodeComponent percent-encodes a query value the way browsers encode URI
// components: spaces become %20, never '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// queryString joins ordered key/value pairs into an encoded query string.
func queryString(pairs ...[2]string) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(encodeComponent(p[1]))
	}
	return b.String()
}
