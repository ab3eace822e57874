// backend/src/validation/sanitizers.go
package validation

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// Definition of strict sanitization policy
	strictHTMLPolicy *bluemonday.Policy
)

func init() {
	// Initialize strict policy once at startup
	strictHTMLPolicy = bluemonday.StrictPolicy() // Removes all HTML tags
}

// SanitizeText removes all HTML tags and attributes from an input string.
// Broker payloads come from scraped pages, so every free-text field gets
// this treatment before being stored or served.
func SanitizeText(s string) string {
	return strictHTMLPolicy.Sanitize(s)
}

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1 // Drop the rune
	}, s)
}

// SanitizeJSONStrings walks a decoded JSON document and sanitizes every
// string value in place, preserving the document structure. The returned
// bytes are a re-marshaled copy; numbers, booleans and nulls pass through.
func SanitizeJSONStrings(raw json.RawMessage) (json.RawMessage, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(sanitizeValue(doc))
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return StripUnprintable(SanitizeText(val))
	case []any:
		for i := range val {
			val[i] = sanitizeValue(val[i])
		}
		return val
	case map[string]any:
		for k := range val {
			val[k] = sanitizeValue(val[k])
		}
		return val
	default:
		return v
	}
}
