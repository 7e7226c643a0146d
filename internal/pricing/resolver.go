package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/types"
)

// Specificity scores, higher = more narrowly targeted. Used only to break
// priority ties.
const (
	scorePlanForAgent = 5
	scorePlan         = 4
	scoreAgent        = 3
	scoreCountry      = 2
	scoreDefault      = 1
)

// Specificity ranks how narrowly a rule targets the given context.
func Specificity(rule *pricingrule.PricingRule, ctx Context) int {
	switch rule.RuleType {
	case types.RuleTypePlan:
		if !targetsPlan(rule, ctx) {
			return scoreDefault
		}
		if rule.AgentFilter != nil && *rule.AgentFilter != "" && *rule.AgentFilter == ctx.AgentID {
			return scorePlanForAgent
		}
		return scorePlan
	case types.RuleTypeAgent:
		if targetID(rule) == ctx.AgentID {
			return scoreAgent
		}
		return scoreDefault
	case types.RuleTypeCountry:
		if targetID(rule) == ctx.CountryCode {
			return scoreCountry
		}
		return scoreDefault
	default:
		return scoreDefault
	}
}

// Select picks exactly one winner from the candidate set:
//  1. the lower priority number wins;
//  2. on equal priority the higher specificity wins;
//  3. otherwise the first-seen candidate is kept (stable).
//
// Returns nil for an empty candidate set; the caller then applies the
// synthetic default markup.
func Select(candidates []*pricingrule.PricingRule, ctx Context) *pricingrule.PricingRule {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Priority < best.Priority {
			best = candidate
			continue
		}
		if candidate.Priority == best.Priority &&
			Specificity(candidate, ctx) > Specificity(best, ctx) {
			best = candidate
		}
	}
	return best
}

// Resolve runs the full pipeline: match, select, calculate. It is total -
// for any wholesale price it returns a price, falling back to the default
// markup when nothing matches.
func Resolve(rules []*pricingrule.PricingRule, ctx Context, wholesalePrice decimal.Decimal) decimal.Decimal {
	selected := Select(Candidates(rules, ctx), ctx)
	return Calculate(wholesalePrice, selected)
}
