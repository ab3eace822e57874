// backend/src/processors/evaluator.go
package processors

import (
	"github.com/username/feecompare/backend/src/models"
	"github.com/username/feecompare/backend/src/utils"
)

// FeeEvaluator computes concrete monetary fees from canonical fee entries.
// It is pure and deterministic: absence of a computable rule is signaled by
// a nil result, never by an error.
type FeeEvaluator struct{}

func NewFeeEvaluator() *FeeEvaluator { return &FeeEvaluator{} }

// Evaluate returns the fee in euros for trading the given amount under the
// fee entry, rounded to cents, or nil when no rule applies.
//
// A linear formula is base + percent*amount, clamped to min first and max
// second, each only when present. A tiered entry selects the first tier
// whose inclusive [from, to] bounds contain the amount.
func (e *FeeEvaluator) Evaluate(fee models.TransactionFee, amount float64) *float64 {
	if f := fee.FormulaStructured; f != nil && (f.Base != nil || f.Percent != nil) {
		raw := 0.0
		if f.Base != nil {
			raw = *f.Base
		}
		if f.Percent != nil {
			raw += *f.Percent / 100 * amount
		}
		if f.Min != nil && raw < *f.Min {
			raw = *f.Min
		}
		if f.Max != nil && raw > *f.Max {
			raw = *f.Max
		}
		rounded := utils.RoundFloat(raw, 2)
		return &rounded
	}

	for _, tier := range fee.Tiers {
		if tier.From != nil && amount < *tier.From {
			continue
		}
		if tier.To != nil && amount > *tier.To {
			continue
		}
		// First matching tier wins, even when its fee is unparsed.
		if tier.Fee == nil {
			return nil
		}
		rounded := utils.RoundFloat(*tier.Fee, 2)
		return &rounded
	}

	return nil
}
