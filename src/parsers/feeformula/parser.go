// backend/src/parsers/feeformula/parser.go
package feeformula

import (
	"regexp"
	"strconv"
	"strings"
)

// This package extracts numeric facts from scraped free-text fee formulas
// such as "1% Min. €40" or "€7.50 + 0.15%". All functions are pure and
// best-effort: an absent match is a nil result, never an error.
//
// Only the euro sign is recognized as the canonical amount marker. Amounts
// quoted in other currencies pass through unparsed.

var (
	percentRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
	euroRe    = regexp.MustCompile(`€\s*(\d+(?:[.,]\d+)?)`)
	minRe     = regexp.MustCompile(`(?i)min(?:imum)?\.?\s*:?\s*€?\s*(\d+(?:[.,]\d+)?)`)
	maxRe     = regexp.MustCompile(`(?i)max(?:imum)?\.?\s*:?\s*€?\s*(\d+(?:[.,]\d+)?)`)
	rangeRe   = regexp.MustCompile(`(?i)from\s*€?\s*(\d+(?:[.,]\d+)?)\s*(?:to|until|[-–])\s*€?\s*(\d+(?:[.,]\d+)?)`)
)

// normalizeDecimalString prepares a captured number for strconv: trims
// whitespace/quotes and converts a decimal comma to a period.
func normalizeDecimalString(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.Trim(cleaned, "\"")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return cleaned
}

func parseDecimal(s string) *float64 {
	v, err := strconv.ParseFloat(normalizeDecimalString(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ExtractPercentage returns the first decimal number immediately followed by
// a percent sign, or nil if the text contains none.
func ExtractPercentage(text string) *float64 {
	matches := percentRe.FindStringSubmatch(text)
	if matches == nil {
		return nil
	}
	return parseDecimal(matches[1])
}

// ExtractCurrencyAmount returns the first euro amount ("€7,50") in the text,
// or nil if none is found.
func ExtractCurrencyAmount(text string) *float64 {
	matches := euroRe.FindStringSubmatch(text)
	if matches == nil {
		return nil
	}
	return parseDecimal(matches[1])
}

// ExtractMinMax looks for "Min."/"Max." markers (case-insensitive, long
// forms accepted) followed by an optional euro sign and a number. Each bound
// is independently optional.
func ExtractMinMax(text string) (min, max *float64) {
	if matches := minRe.FindStringSubmatch(text); matches != nil {
		min = parseDecimal(matches[1])
	}
	if matches := maxRe.FindStringSubmatch(text); matches != nil {
		max = parseDecimal(matches[1])
	}
	return min, max
}

// ExtractRange parses a "from X to Y" volume range out of a condition text.
// The third return value reports whether a complete range was found.
func ExtractRange(text string) (from, to *float64, ok bool) {
	matches := rangeRe.FindStringSubmatch(text)
	if matches == nil {
		return nil, nil, false
	}
	from = parseDecimal(matches[1])
	to = parseDecimal(matches[2])
	return from, to, from != nil && to != nil
}
