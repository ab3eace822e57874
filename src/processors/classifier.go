// backend/src/processors/classifier.go
package processors

import "encoding/json"

// IsReadableFormat reports whether a decoded broker payload element uses the
// newer human-readable schema. It returns true only for an object carrying a
// string broker_name plus at least one of the scraper-specific fields.
// Anything else is treated as already normalized, so classification fails
// safe toward "no conversion needed" and valid canonical data is never
// processed twice.
func IsReadableFormat(element any) bool {
	obj, ok := element.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := obj["broker_name"].(string); !ok {
		return false
	}
	if _, ok := obj["fee_categories"].([]any); ok {
		return true
	}
	if _, ok := obj["special_fees"].([]any); ok {
		return true
	}
	if _, ok := obj["custody_charges"].(string); ok {
		return true
	}
	if _, ok := obj["summary"].(string); ok {
		return true
	}
	return false
}

// IsReadableMessage decodes a raw JSON element and classifies it. Undecodable
// input counts as not readable.
func IsReadableMessage(raw json.RawMessage) bool {
	var element any
	if err := json.Unmarshal(raw, &element); err != nil {
		return false
	}
	return IsReadableFormat(element)
}
