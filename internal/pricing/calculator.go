package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/types"
)

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

// defaultMultiplier is 1 + 300/100 = 4x wholesale
var defaultMultiplier = one.Add(types.DefaultMarkupPercent.Div(oneHundred))

// Calculate applies a rule's markup semantics to a wholesale price. No
// rounding happens here; currency rounding is a presentation concern of the
// caller. A nil rule or an unrecognized markup type resolves to the default
// multiplier, never an error.
func Calculate(wholesalePrice decimal.Decimal, rule *pricingrule.PricingRule) decimal.Decimal {
	if rule == nil {
		return wholesalePrice.Mul(defaultMultiplier)
	}

	switch rule.MarkupType {
	case types.MarkupTypeFixedPrice:
		return rule.MarkupValue
	case types.MarkupTypePercent:
		return wholesalePrice.Mul(one.Add(rule.MarkupValue.Div(oneHundred)))
	case types.MarkupTypeFixed:
		return wholesalePrice.Add(rule.MarkupValue)
	default:
		return wholesalePrice.Mul(defaultMultiplier)
	}
}
