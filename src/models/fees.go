// backend/src/models/fees.go
package models

// Closed set of instrument types. The normalizer infers these from free text,
// so they are advisory, not authoritative.
const (
	InstrumentEquities = "Equities"
	InstrumentOptions  = "Options"
	InstrumentBonds    = "Bonds"
	InstrumentFunds    = "Funds"
)

// Pricing types for a transaction fee line.
const (
	PricingLinear = "linear"
	PricingTiered = "tiered"
)

// Ancillary fee value types.
const (
	FeeTypeFixed      = "fixed"
	FeeTypePercentage = "percentage"
)

// Ancillary fee frequencies.
const (
	FrequencyMonthly        = "monthly"
	FrequencyYearly         = "yearly"
	FrequencyPerTransaction = "per transaction"
)

// Broker is the canonical, already-normalized representation of a single
// broker's fee schedule. Both input schemas converge on this shape before
// any evaluation happens. It deliberately carries none of the scraper-only
// string fields (summary, custody_charges) so that canonical output is never
// re-classified as needing conversion.
type Broker struct {
	BrokerName   string       `json:"broker_name"`
	PricingModel PricingModel `json:"pricing_model"`
}

// PricingModel groups every fee a broker charges: per-transaction fees plus
// the ancillary custody, FX and "other" fees.
type PricingModel struct {
	CustodyFee      *AncillaryFee    `json:"custody_fee,omitempty"`
	TransactionFees []TransactionFee `json:"transaction_fees"`
	FxFees          *AncillaryFee    `json:"fx_fees,omitempty"`
	OtherFees       []OtherFee       `json:"other_fees,omitempty"`
}

// TransactionFee is one computable fee line for an (instrument, market) pair.
// PricingType selects the evaluation branch; the other of FormulaStructured
// and Tiers may still be present structurally but is ignored.
type TransactionFee struct {
	InstrumentType    string      `json:"instrument_type"`
	Market            string      `json:"market"`
	PricingType       string      `json:"pricing_type"`
	FormulaStructured *FeeFormula `json:"formula_structured,omitempty"`
	Tiers             []FeeTier   `json:"tiers,omitempty"`
	Notes             string      `json:"notes,omitempty"`
}

// FeeFormula is a linear fee: base + percent*amount, clamped to [min, max].
// Every field is independently optional; a nil field contributes nothing.
type FeeFormula struct {
	Base    *float64 `json:"base,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// FeeTier is one bucket of a tiered price table. A nil From means
// unbounded below, a nil To unbounded above. Bounds are inclusive.
type FeeTier struct {
	From     *float64 `json:"from,omitempty"`
	To       *float64 `json:"to,omitempty"`
	Fee      *float64 `json:"fee,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// AncillaryFee is a fee not tied to a specific transaction size (custody,
// FX conversion). Value is nil when the source text could not be parsed
// into a number; nil must never be treated as zero downstream.
type AncillaryFee struct {
	Type      string   `json:"type"`
	Value     *float64 `json:"value"`
	Currency  string   `json:"currency,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// OtherFee is a named ancillary fee (inactivity charge, statement fee, ...).
type OtherFee struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Value     *float64 `json:"value"`
	Currency  string   `json:"currency,omitempty"`
	Frequency string   `json:"frequency,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}
