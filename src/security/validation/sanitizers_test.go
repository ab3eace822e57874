package validation

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "1% Min. €40", "1% Min. €40"},
		{"script stripped", `<script>alert(1)</script>BrokerA`, "BrokerA"},
		{"tags stripped", "<b>Euronext</b> Brussels", "Euronext Brussels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeJSONStrings(t *testing.T) {
	raw := json.RawMessage(`[
		{
			"broker_name": "<script>x</script>BrokerA",
			"fee_categories": [
				{"category_name": "Trading<b></b>", "tiers": [
					{"volume_or_condition": "Brussels", "fee_structure": "1% Min. €40"}
				]}
			],
			"row_count": 3
		}
	]`)

	sanitized, err := SanitizeJSONStrings(raw)
	if err != nil {
		t.Fatalf("SanitizeJSONStrings: %v", err)
	}

	out := string(sanitized)
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Fatalf("HTML survived sanitization: %s", out)
	}
	if !strings.Contains(out, "BrokerA") {
		t.Errorf("text content lost: %s", out)
	}
	if !strings.Contains(out, `"row_count":3`) {
		t.Errorf("non-string values must pass through: %s", out)
	}
}

func TestSanitizeJSONStringsRejectsGarbage(t *testing.T) {
	if _, err := SanitizeJSONStrings(json.RawMessage(`{{{`)); err == nil {
		t.Fatal("expected an error for undecodable input")
	}
}
