// backend/src/utils/utils.go
package utils

import (
	"encoding/json"
	"math"
	"net/http"
)

// roundEpsilon compensates for binary floating point truncation of values
// that are conceptually exact in decimal (2.005 stored as 2.00499...).
const roundEpsilon = 1e-9

// RoundFloat rounds a value to the given number of decimal places,
// half away from zero. Monetary values use precision 2.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	if val < 0 {
		return -math.Round((-val+roundEpsilon)*ratio) / ratio
	}
	return math.Round((val+roundEpsilon)*ratio) / ratio
}

// FloatPtr returns a pointer to v. Optional numeric fields are modeled as
// *float64 throughout, so this shows up anywhere literals are assigned.
func FloatPtr(v float64) *float64 {
	return &v
}

// SendJSONError writes a JSON error body with the given status code.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
