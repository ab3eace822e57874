package processors

import (
	"testing"

	"github.com/username/feecompare/backend/src/models"
	"github.com/username/feecompare/backend/src/utils"
)

func TestEvaluateLinearFormula(t *testing.T) {
	evaluator := NewFeeEvaluator()

	tests := []struct {
		name   string
		fee    models.TransactionFee
		amount float64
		want   *float64
	}{
		{
			name: "base plus percent",
			fee: linearFee(&models.FeeFormula{
				Base:    utils.FloatPtr(2),
				Percent: utils.FloatPtr(0.5),
			}),
			amount: 1000,
			want:   utils.FloatPtr(7),
		},
		{
			name: "min clamp raises small order",
			fee: linearFee(&models.FeeFormula{
				Base:    utils.FloatPtr(2),
				Percent: utils.FloatPtr(1),
				Min:     utils.FloatPtr(5),
				Max:     utils.FloatPtr(50),
			}),
			amount: 100,
			want:   utils.FloatPtr(5),
		},
		{
			name: "max clamp caps large order",
			fee: linearFee(&models.FeeFormula{
				Base:    utils.FloatPtr(2),
				Percent: utils.FloatPtr(1),
				Min:     utils.FloatPtr(5),
				Max:     utils.FloatPtr(50),
			}),
			amount: 10000,
			want:   utils.FloatPtr(50),
		},
		{
			name:   "percent only",
			fee:    linearFee(&models.FeeFormula{Percent: utils.FloatPtr(0.25)}),
			amount: 10000,
			want:   utils.FloatPtr(25),
		},
		{
			name:   "zero base means free",
			fee:    linearFee(&models.FeeFormula{Base: utils.FloatPtr(0)}),
			amount: 5000,
			want:   utils.FloatPtr(0),
		},
		{
			name:   "empty formula yields nil",
			fee:    linearFee(&models.FeeFormula{Min: utils.FloatPtr(5)}),
			amount: 1000,
			want:   nil,
		},
		{
			name:   "no rule at all yields nil",
			fee:    models.TransactionFee{PricingType: models.PricingLinear},
			amount: 1000,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.Evaluate(tt.fee, tt.amount)
			assertFee(t, got, tt.want)
		})
	}
}

func TestEvaluateRoundsHalfCentsUp(t *testing.T) {
	evaluator := NewFeeEvaluator()
	// 0.2005% of 1000 is exactly 2.005, which binary floats store just
	// below; the evaluator must still round it to 2.01.
	fee := linearFee(&models.FeeFormula{Percent: utils.FloatPtr(0.2005)})
	got := evaluator.Evaluate(fee, 1000)
	assertFee(t, got, utils.FloatPtr(2.01))
}

func TestEvaluateTiers(t *testing.T) {
	evaluator := NewFeeEvaluator()
	tiered := models.TransactionFee{
		PricingType: models.PricingTiered,
		Tiers: []models.FeeTier{
			{From: utils.FloatPtr(1000), To: utils.FloatPtr(5000), Fee: utils.FloatPtr(10), Currency: "EUR"},
		},
	}

	tests := []struct {
		name   string
		amount float64
		want   *float64
	}{
		{"lower bound inclusive", 1000, utils.FloatPtr(10)},
		{"upper bound inclusive", 5000, utils.FloatPtr(10)},
		{"inside", 2500, utils.FloatPtr(10)},
		{"below", 999, nil},
		{"above", 5001, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluator.Evaluate(tiered, tt.amount)
			assertFee(t, got, tt.want)
		})
	}
}

func TestEvaluateTierOrderAndOpenBounds(t *testing.T) {
	evaluator := NewFeeEvaluator()

	openEnded := models.TransactionFee{
		PricingType: models.PricingTiered,
		Tiers: []models.FeeTier{
			{To: utils.FloatPtr(1000), Fee: utils.FloatPtr(5)},
			{From: utils.FloatPtr(1000), Fee: utils.FloatPtr(15)},
		},
	}

	// 1000 is contained in both tiers; the first match in list order wins.
	assertFee(t, evaluator.Evaluate(openEnded, 1000), utils.FloatPtr(5))
	// Unbounded below and above.
	assertFee(t, evaluator.Evaluate(openEnded, 1), utils.FloatPtr(5))
	assertFee(t, evaluator.Evaluate(openEnded, 1_000_000), utils.FloatPtr(15))
}

func TestEvaluateTierWithUnparsedFee(t *testing.T) {
	evaluator := NewFeeEvaluator()
	fee := models.TransactionFee{
		PricingType: models.PricingTiered,
		Tiers: []models.FeeTier{
			{From: utils.FloatPtr(0), To: utils.FloatPtr(10000), Fee: nil},
		},
	}
	if got := evaluator.Evaluate(fee, 500); got != nil {
		t.Fatalf("expected nil fee for unparsed tier, got %v", *got)
	}
}

func linearFee(formula *models.FeeFormula) models.TransactionFee {
	return models.TransactionFee{
		InstrumentType:    models.InstrumentEquities,
		Market:            MarketEuronext,
		PricingType:       models.PricingLinear,
		FormulaStructured: formula,
	}
}

func assertFee(t *testing.T, got, want *float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("got %v, want nil", *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("got nil, want %v", *want)
	}
	if *got != *want {
		t.Errorf("got %v, want %v", *got, *want)
	}
}
