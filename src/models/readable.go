// backend/src/models/readable.go
package models

// ReadableBroker is the newer, human-readable schema produced by the broker
// page scraper. Fee amounts arrive as free text ("1% Min. €40") and are
// converted into the canonical Broker shape by the schema normalizer.
type ReadableBroker struct {
	BrokerName     string        `json:"broker_name"`
	Error          string        `json:"error,omitempty"`
	FeeCategories  []FeeCategory `json:"fee_categories,omitempty"`
	SpecialFees    []SpecialFee  `json:"special_fees,omitempty"`
	CustodyCharges string        `json:"custody_charges,omitempty"`
	Summary        string        `json:"summary,omitempty"`
}

// FeeCategory groups fee tiers under a scraped heading such as
// "Trading - Equities" or "Options on Euronext".
type FeeCategory struct {
	CategoryName string         `json:"category_name"`
	Tiers        []ReadableTier `json:"tiers,omitempty"`
}

// ReadableTier is one scraped fee line: a condition describing when it
// applies and the fee itself, both as free text.
type ReadableTier struct {
	VolumeOrCondition string `json:"volume_or_condition"`
	FeeStructure      string `json:"fee_structure"`
}

// SpecialFee is a scraped one-off charge (currency conversion, inactivity,
// paper statements) with a free-text amount and applicability note.
type SpecialFee struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	WhenApplied string `json:"when_applied,omitempty"`
}
