// backend/src/processors/normalizer.go
package processors

import (
	"strings"

	"github.com/username/feecompare/backend/src/models"
	"github.com/username/feecompare/backend/src/parsers/feeformula"
)

// custodyNoneMarker is emitted by the scraper when a broker charges no
// custody fee at all.
const custodyNoneMarker = "None"

// SchemaNormalizer converts human-readable broker records into the canonical
// Broker shape. Conversion is per broker, best-effort and never fails:
// anything unparseable degrades to a nil value instead of an error.
type SchemaNormalizer struct{}

func NewSchemaNormalizer() *SchemaNormalizer { return &SchemaNormalizer{} }

// Normalize converts a list of readable broker records. Records flagged with
// a scraper error are dropped entirely; a partially-scraped fee table must
// not enter the computation pipeline.
func (n *SchemaNormalizer) Normalize(brokers []models.ReadableBroker) []models.Broker {
	normalized := make([]models.Broker, 0, len(brokers))
	for _, rb := range brokers {
		if rb.Error != "" {
			continue
		}
		normalized = append(normalized, n.normalizeBroker(rb))
	}
	return normalized
}

func (n *SchemaNormalizer) normalizeBroker(rb models.ReadableBroker) models.Broker {
	pm := models.PricingModel{
		TransactionFees: []models.TransactionFee{},
	}

	for _, category := range rb.FeeCategories {
		instrument := classifyInstrument(category.CategoryName)
		for _, tier := range category.Tiers {
			pm.TransactionFees = append(pm.TransactionFees, normalizeTier(instrument, tier))
		}
	}

	for _, sf := range rb.SpecialFees {
		pm.OtherFees = append(pm.OtherFees, normalizeSpecialFee(sf))

		// An FX fee is synthesized from the first special fee that talks
		// about currency conversion.
		if pm.FxFees == nil && mentionsCurrency(sf) {
			pm.FxFees = &models.AncillaryFee{
				Type:      models.FeeTypePercentage,
				Value:     feeformula.ExtractPercentage(sf.Amount),
				Frequency: models.FrequencyPerTransaction,
				Notes:     sf.Name,
			}
		}
	}

	pm.CustodyFee = normalizeCustody(rb.CustodyCharges)

	return models.Broker{
		BrokerName:   rb.BrokerName,
		PricingModel: pm,
	}
}

// normalizeTier turns one scraped fee line into a computable fee entry:
// zero for free trading, a single-entry tier table when the condition text
// carries a "from X to Y" volume range, otherwise a linear formula.
func normalizeTier(instrument string, tier models.ReadableTier) models.TransactionFee {
	fee := models.TransactionFee{
		InstrumentType: instrument,
		Market:         classifyMarket(tier.VolumeOrCondition),
		Notes:          strings.TrimSpace(tier.VolumeOrCondition),
	}

	feeText := tier.FeeStructure

	if denotesFree(feeText) {
		zero := 0.0
		fee.PricingType = models.PricingLinear
		fee.FormulaStructured = &models.FeeFormula{Base: &zero}
		return fee
	}

	if from, to, ok := feeformula.ExtractRange(tier.VolumeOrCondition); ok {
		fee.PricingType = models.PricingTiered
		fee.Tiers = []models.FeeTier{{
			From:     from,
			To:       to,
			Fee:      tierAmount(feeText),
			Currency: "EUR",
		}}
		return fee
	}

	formula := &models.FeeFormula{
		Percent: feeformula.ExtractPercentage(feeText),
		Base:    feeformula.ExtractCurrencyAmount(feeText),
	}
	formula.Min, formula.Max = feeformula.ExtractMinMax(feeText)

	// A euro amount sitting behind a "Min."/"Max." marker is a clamp, not a
	// base charge. When the captured amount is the same number as an
	// explicit bound, the explicit bound wins and the base is dropped.
	if formula.Base != nil {
		if (formula.Min != nil && *formula.Base == *formula.Min) ||
			(formula.Max != nil && *formula.Base == *formula.Max) {
			formula.Base = nil
		}
	}

	fee.PricingType = models.PricingLinear
	fee.FormulaStructured = formula
	return fee
}

// tierAmount extracts the flat fee of a tiered entry: a euro amount if
// present, otherwise a percentage is not meaningful for a flat tier and the
// fee stays nil.
func tierAmount(feeText string) *float64 {
	return feeformula.ExtractCurrencyAmount(feeText)
}

func denotesFree(feeText string) bool {
	lower := strings.ToLower(strings.TrimSpace(feeText))
	return lower == "free" || lower == "gratis" || strings.HasPrefix(lower, "free ")
}

func normalizeSpecialFee(sf models.SpecialFee) models.OtherFee {
	of := models.OtherFee{
		Name:  strings.TrimSpace(sf.Name),
		Notes: strings.TrimSpace(sf.WhenApplied),
	}

	if strings.Contains(sf.Amount, "%") {
		of.Type = models.FeeTypePercentage
		of.Value = feeformula.ExtractPercentage(sf.Amount)
	} else {
		of.Type = models.FeeTypeFixed
		of.Value = feeformula.ExtractCurrencyAmount(sf.Amount)
		of.Currency = "EUR"
	}

	if strings.Contains(strings.ToLower(sf.WhenApplied), "annual") {
		of.Frequency = models.FrequencyYearly
	} else {
		of.Frequency = models.FrequencyPerTransaction
	}
	return of
}

// normalizeCustody converts the scraped custody charge text into a single
// ancillary record. The literal "None" marker means the broker charges no
// custody fee and maps to no record at all.
func normalizeCustody(text string) *models.AncillaryFee {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == custodyNoneMarker {
		return nil
	}

	cf := &models.AncillaryFee{Notes: trimmed}

	if strings.Contains(trimmed, "%") {
		cf.Type = models.FeeTypePercentage
		cf.Value = feeformula.ExtractPercentage(trimmed)
	} else {
		cf.Type = models.FeeTypeFixed
		cf.Value = feeformula.ExtractCurrencyAmount(trimmed)
		cf.Currency = "EUR"
	}

	if strings.Contains(strings.ToLower(trimmed), "month") {
		cf.Frequency = models.FrequencyMonthly
	} else {
		cf.Frequency = models.FrequencyYearly
	}
	return cf
}

func mentionsCurrency(sf models.SpecialFee) bool {
	return strings.Contains(strings.ToLower(sf.Name), "currency") ||
		strings.Contains(strings.ToLower(sf.WhenApplied), "currency")
}
