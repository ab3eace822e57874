package processors

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/username/feecompare/backend/src/models"
	"github.com/username/feecompare/backend/src/utils"
)

func TestFlattenRejectsNonArrayInput(t *testing.T) {
	flattener := NewRowFlattener()
	tests := []struct {
		name string
		in   string
	}{
		{"null", `null`},
		{"string", `"brokers"`},
		{"object", `{"broker_name":"BrokerA"}`},
		{"number", `42`},
		{"garbage", `{{{`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := flattener.Flatten(json.RawMessage(tt.in))
			if rows == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(rows) != 0 {
				t.Fatalf("expected no rows, got %d", len(rows))
			}
		})
	}
}

// Full readable-schema round trip: scrape text in, evaluated rows out.
func TestFlattenReadablePayload(t *testing.T) {
	payload := `[
		{
			"broker_name": "BrokerA",
			"fee_categories": [
				{
					"category_name": "Trading - Equities",
					"tiers": [
						{
							"volume_or_condition": "Euronext Brussels – normal charge",
							"fee_structure": "1% Min. €40"
						}
					]
				}
			],
			"custody_charges": "None"
		}
	]`

	flattener := NewRowFlattener()
	rows := flattener.Flatten(json.RawMessage(payload))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.ID != "BrokerA-Equities-Euronext-0" {
		t.Errorf("unexpected row ID %q", row.ID)
	}
	if row.InstrumentType != models.InstrumentEquities || row.Market != MarketEuronext {
		t.Errorf("unexpected classification: %q / %q", row.InstrumentType, row.Market)
	}
	// 1% of 1000 is 10, clamped up to the €40 minimum.
	assertFee(t, row.ExampleFee1000, utils.FloatPtr(40))
	// 1% of 10000 is 100; the minimum no longer binds.
	assertFee(t, row.ExampleFee10000, utils.FloatPtr(100))
	if row.CustodySummary != "" {
		t.Errorf("expected empty custody summary for 'None', got %q", row.CustodySummary)
	}
}

func TestFlattenErrorRecordYieldsNoRows(t *testing.T) {
	payload := `[
		{
			"broker_name": "Broken",
			"error": "scrape timed out",
			"fee_categories": [
				{
					"category_name": "Trading - Equities",
					"tiers": [
						{"volume_or_condition": "Brussels", "fee_structure": "€5"}
					]
				}
			]
		}
	]`

	rows := NewRowFlattener().Flatten(json.RawMessage(payload))
	if len(rows) != 0 {
		t.Fatalf("expected no rows from an error record, got %d", len(rows))
	}
}

func TestFlattenStructuredPayloadPassesThrough(t *testing.T) {
	payload := `[
		{
			"broker_name": "BrokerB",
			"pricing_model": {
				"transaction_fees": [
					{
						"instrument_type": "Equities",
						"market": "Euronext",
						"pricing_type": "linear",
						"formula_structured": {"base": 2, "percent": 0.1}
					},
					{
						"instrument_type": "Equities",
						"market": "Euronext",
						"pricing_type": "tiered",
						"tiers": [{"from": 0, "to": 100000, "fee": 15, "currency": "EUR"}]
					}
				],
				"custody_fee": {"type": "fixed", "value": 12, "currency": "EUR", "frequency": "yearly"}
			}
		}
	]`

	rows := NewRowFlattener().Flatten(json.RawMessage(payload))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Same (broker, instrument, market) pair twice; the index keeps IDs unique.
	if rows[0].ID == rows[1].ID {
		t.Fatalf("duplicate row IDs: %q", rows[0].ID)
	}
	if rows[0].ID != "BrokerB-Equities-Euronext-0" || rows[1].ID != "BrokerB-Equities-Euronext-1" {
		t.Errorf("unexpected row IDs %q, %q", rows[0].ID, rows[1].ID)
	}

	assertFee(t, rows[0].ExampleFee1000, utils.FloatPtr(3))
	assertFee(t, rows[1].ExampleFee5000, utils.FloatPtr(15))

	if rows[0].CustodySummary != "12.00 EUR/yearly" {
		t.Errorf("unexpected custody summary %q", rows[0].CustodySummary)
	}
}

func TestOtherFeesSummaryDistinguishesNilFromZero(t *testing.T) {
	broker := models.Broker{
		BrokerName: "BrokerC",
		PricingModel: models.PricingModel{
			TransactionFees: []models.TransactionFee{{
				InstrumentType:    models.InstrumentEquities,
				Market:            MarketEuronext,
				PricingType:       models.PricingLinear,
				FormulaStructured: &models.FeeFormula{Base: utils.FloatPtr(0)},
			}},
			OtherFees: []models.OtherFee{
				{Name: "Statements", Type: models.FeeTypeFixed, Value: nil, Frequency: models.FrequencyPerTransaction, Notes: "on request"},
				{Name: "Inactivity", Type: models.FeeTypeFixed, Value: utils.FloatPtr(0), Currency: "EUR", Frequency: models.FrequencyYearly},
			},
		},
	}

	rows := NewRowFlattener().FlattenBrokers([]models.Broker{broker})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	summary := rows[0].OtherFeesSummary
	if !strings.Contains(summary, "Statements (n/a/per transaction • on request)") {
		t.Errorf("unparsed value must render as n/a, got %q", summary)
	}
	if !strings.Contains(summary, "Inactivity (0.00 EUR/yearly)") {
		t.Errorf("true zero must render as 0.00, got %q", summary)
	}
	if !strings.Contains(summary, "; ") {
		t.Errorf("expected semicolon-joined summary, got %q", summary)
	}
}

func TestFlattenMixedDecisionIsPerPayload(t *testing.T) {
	// One readable element switches the whole payload to normalization;
	// the decision is all-or-nothing per call.
	payload := `[
		{"broker_name": "BrokerA", "custody_charges": "None"},
		{"broker_name": "BrokerB", "fee_categories": [
			{"category_name": "Options", "tiers": [
				{"volume_or_condition": "index options", "fee_structure": "€2.50"}
			]}
		]}
	]`

	rows := NewRowFlattener().Flatten(json.RawMessage(payload))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.BrokerName != "BrokerB" || row.InstrumentType != models.InstrumentOptions || row.Market != MarketIndexOptions {
		t.Errorf("unexpected row %+v", row)
	}
	assertFee(t, row.ExampleFee1000, utils.FloatPtr(2.5))
}
