// backend/src/processors/rules.go
package processors

import (
	"strings"

	"github.com/username/feecompare/backend/src/models"
)

// keywordRule maps any of its keywords, found as a case-insensitive
// substring, to a label. Rules are evaluated in table order and the first
// hit wins, so broader keywords belong lower in the table.
type keywordRule struct {
	Keywords []string
	Label    string
}

// instrumentRules classify a scraped category name into an instrument type.
var instrumentRules = []keywordRule{
	{Keywords: []string{"option"}, Label: models.InstrumentOptions},
	{Keywords: []string{"bond", "obligation"}, Label: models.InstrumentBonds},
	{Keywords: []string{"fund", "etf", "tracker"}, Label: models.InstrumentFunds},
}

const defaultInstrument = models.InstrumentEquities

// Market labels as shown in the comparison table.
const (
	MarketEuronext     = "Euronext"
	MarketIndexOptions = "Index Options"
	MarketXetra        = "Xetra"
	MarketLondon       = "London Stock Exchange"
	MarketSwiss        = "SIX Swiss Exchange"
	MarketNordic       = "Nordic Markets"
	MarketUS           = "US Markets"
	MarketCanada       = "Canadian Markets"
)

// marketRules classify a tier's condition text into a trading venue group.
// The Euronext home markets take priority over everything else; all
// matching is uniformly case-insensitive, including the Nordic venues.
var marketRules = []keywordRule{
	{Keywords: []string{"brussels", "amsterdam", "paris", "euronext"}, Label: MarketEuronext},
	{Keywords: []string{"index option"}, Label: MarketIndexOptions},
	{Keywords: []string{"xetra", "frankfurt", "german"}, Label: MarketXetra},
	{Keywords: []string{"london", "lse"}, Label: MarketLondon},
	{Keywords: []string{"swiss", "zurich", "six"}, Label: MarketSwiss},
	{Keywords: []string{"nordic", "stockholm", "helsinki", "copenhagen", "oslo"}, Label: MarketNordic},
	{Keywords: []string{"nyse", "nasdaq", "united states", "usa", "us market", "american"}, Label: MarketUS},
	{Keywords: []string{"canada", "toronto", "tsx"}, Label: MarketCanada},
}

const defaultMarket = MarketEuronext

func matchRules(rules []keywordRule, text, fallback string) string {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Label
			}
		}
	}
	return fallback
}

// classifyInstrument infers an instrument type from a fee category name.
func classifyInstrument(categoryName string) string {
	return matchRules(instrumentRules, categoryName, defaultInstrument)
}

// classifyMarket infers a venue group from a tier's condition text.
func classifyMarket(condition string) string {
	return matchRules(marketRules, condition, defaultMarket)
}
