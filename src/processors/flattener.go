// backend/src/processors/flattener.go
package processors

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/username/feecompare/backend/src/models"
)

// RowFlattener is the public entry point of the fee engine: it takes a raw
// broker payload in either schema and expands it into one pricing row per
// (broker, instrument, market) fee line, with example fees precomputed at
// the reference trade sizes.
type RowFlattener struct {
	normalizer *SchemaNormalizer
	evaluator  *FeeEvaluator
}

func NewRowFlattener() *RowFlattener {
	return &RowFlattener{
		normalizer: NewSchemaNormalizer(),
		evaluator:  NewFeeEvaluator(),
	}
}

// DecodeBrokers decodes a raw payload into canonical brokers, normalizing
// first when any element matches the human-readable schema. The decision is
// per payload, not per element: a single scrape run emits a homogeneous
// format. Non-array or undecodable input yields an empty slice; the payload
// is untrusted and "no valid data" and "malformed input" are treated alike.
func (f *RowFlattener) DecodeBrokers(payload json.RawMessage) []models.Broker {
	var elements []json.RawMessage
	if err := json.Unmarshal(payload, &elements); err != nil {
		return []models.Broker{}
	}

	readable := false
	for _, element := range elements {
		if IsReadableMessage(element) {
			readable = true
			break
		}
	}

	if readable {
		var scraped []models.ReadableBroker
		if err := json.Unmarshal(payload, &scraped); err != nil {
			return []models.Broker{}
		}
		return f.normalizer.Normalize(scraped)
	}

	var brokers []models.Broker
	if err := json.Unmarshal(payload, &brokers); err != nil {
		return []models.Broker{}
	}
	return brokers
}

// Flatten decodes and flattens a raw broker payload.
func (f *RowFlattener) Flatten(payload json.RawMessage) []models.PricingRow {
	return f.FlattenBrokers(f.DecodeBrokers(payload))
}

// FlattenBrokers expands canonical brokers into displayable pricing rows.
// The row ID combines broker, instrument, market and the positional index of
// the fee line, so brokers with several lines for the same pair stay unique.
func (f *RowFlattener) FlattenBrokers(brokers []models.Broker) []models.PricingRow {
	rows := make([]models.PricingRow, 0, len(brokers))
	for _, broker := range brokers {
		custody := summarizeAncillary(broker.PricingModel.CustodyFee)
		fx := summarizeAncillary(broker.PricingModel.FxFees)
		other := summarizeOtherFees(broker.PricingModel.OtherFees)

		for i, fee := range broker.PricingModel.TransactionFees {
			row := models.PricingRow{
				ID: fmt.Sprintf("%s-%s-%s-%d",
					broker.BrokerName, fee.InstrumentType, fee.Market, i),
				BrokerName:       broker.BrokerName,
				InstrumentType:   fee.InstrumentType,
				Market:           fee.Market,
				PricingType:      fee.PricingType,
				CustodySummary:   custody,
				FxSummary:        fx,
				OtherFeesSummary: other,
				Notes:            fee.Notes,
				ExampleFee1000:   f.evaluator.Evaluate(fee, models.ReferenceAmountSmall),
				ExampleFee5000:   f.evaluator.Evaluate(fee, models.ReferenceAmountMedium),
				ExampleFee10000:  f.evaluator.Evaluate(fee, models.ReferenceAmountLarge),
			}
			if formula := fee.FormulaStructured; formula != nil {
				row.Base = formula.Base
				row.Percent = formula.Percent
				row.Min = formula.Min
				row.Max = formula.Max
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// renderFeeValue renders an ancillary fee value for display. An unparsed
// value renders as "n/a"; it is absence of information, not a zero charge.
func renderFeeValue(feeType string, value *float64, currency string) string {
	if value == nil {
		return "n/a"
	}
	if feeType == models.FeeTypePercentage {
		return fmt.Sprintf("%g%%", *value)
	}
	if currency != "" {
		return fmt.Sprintf("%.2f %s", *value, currency)
	}
	return fmt.Sprintf("%.2f", *value)
}

func summarizeAncillary(fee *models.AncillaryFee) string {
	if fee == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(renderFeeValue(fee.Type, fee.Value, fee.Currency))
	if fee.Frequency != "" {
		b.WriteString("/")
		b.WriteString(fee.Frequency)
	}
	if fee.Notes != "" {
		b.WriteString(" • ")
		b.WriteString(fee.Notes)
	}
	return b.String()
}

// summarizeOtherFees renders each other fee as
// "name (value/frequency • notes)" with missing sub-parts omitted, joined
// with semicolons.
func summarizeOtherFees(fees []models.OtherFee) string {
	parts := make([]string, 0, len(fees))
	for _, of := range fees {
		var detail strings.Builder
		detail.WriteString(renderFeeValue(of.Type, of.Value, of.Currency))
		if of.Frequency != "" {
			detail.WriteString("/")
			detail.WriteString(of.Frequency)
		}
		if of.Notes != "" {
			detail.WriteString(" • ")
			detail.WriteString(of.Notes)
		}
		if of.Name != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", of.Name, detail.String()))
		} else {
			parts = append(parts, detail.String())
		}
	}
	return strings.Join(parts, "; ")
}
