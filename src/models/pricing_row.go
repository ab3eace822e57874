// backend/src/models/pricing_row.go
package models

import "time"

// Reference trade sizes (EUR) at which example fees are precomputed for
// every flattened row.
const (
	ReferenceAmountSmall  = 1000.0
	ReferenceAmountMedium = 5000.0
	ReferenceAmountLarge  = 10000.0
)

// PricingRow is one displayable record: a broker, an (instrument, market)
// pair, the formula fields for display, summarized ancillary fees and three
// precomputed example fees. Example fees are nil when the fee line carries
// no computable rule.
type PricingRow struct {
	ID             string `json:"id"`
	BrokerName     string `json:"broker_name"`
	InstrumentType string `json:"instrument_type"`
	Market         string `json:"market"`
	PricingType    string `json:"pricing_type"`

	Base    *float64 `json:"base,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`

	CustodySummary   string `json:"custody_summary,omitempty"`
	FxSummary        string `json:"fx_summary,omitempty"`
	OtherFeesSummary string `json:"other_fees_summary,omitempty"`
	Notes            string `json:"notes,omitempty"`

	ExampleFee1000  *float64 `json:"example_fee_1000"`
	ExampleFee5000  *float64 `json:"example_fee_5000"`
	ExampleFee10000 *float64 `json:"example_fee_10000"`
}

// RowComparison is a PricingRow evaluated at a caller-supplied trade amount.
type RowComparison struct {
	ID             string   `json:"id"`
	BrokerName     string   `json:"broker_name"`
	InstrumentType string   `json:"instrument_type"`
	Market         string   `json:"market"`
	Amount         float64  `json:"amount"`
	Fee            *float64 `json:"fee"`
}

// Snapshot is one ingested broker payload as stored in the snapshot table.
type Snapshot struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Format     string    `json:"format"` // "readable" or "structured"
	Payload    []byte    `json:"payload,omitempty"`
	RowCount   int       `json:"row_count"`
}
