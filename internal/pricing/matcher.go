package pricing

import (
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/types"
)

// Candidates filters the rule set down to the rules whose target matches the
// context. Pure filter, no side effects. Inactive rules never match, and a
// rule type outside the known set is excluded (fail-closed).
func Candidates(rules []*pricingrule.PricingRule, ctx Context) []*pricingrule.PricingRule {
	candidates := make([]*pricingrule.PricingRule, 0, len(rules))
	for _, rule := range rules {
		if rule == nil || !rule.IsActive() {
			continue
		}
		if matches(rule, ctx) {
			candidates = append(candidates, rule)
		}
	}
	return candidates
}

func matches(rule *pricingrule.PricingRule, ctx Context) bool {
	switch rule.RuleType {
	case types.RuleTypePlan:
		if rule.AgentFilter != nil && *rule.AgentFilter != "" && *rule.AgentFilter != ctx.AgentID {
			return false
		}
		return targetsPlan(rule, ctx)
	case types.RuleTypeAgent:
		return targetID(rule) != "" && targetID(rule) == ctx.AgentID
	case types.RuleTypeCountry:
		return targetID(rule) != "" && targetID(rule) == ctx.CountryCode
	case types.RuleTypeDefault:
		return true
	default:
		return false
	}
}

// targetsPlan accepts a plan rule when its target is either the supplier's
// plan id or our own plan id for the context.
func targetsPlan(rule *pricingrule.PricingRule, ctx Context) bool {
	target := targetID(rule)
	if target == "" {
		return false
	}
	return (ctx.SupplierPlanID != "" && target == ctx.SupplierPlanID) ||
		(ctx.PlanID != "" && target == ctx.PlanID)
}

func targetID(rule *pricingrule.PricingRule) string {
	if rule.TargetID == nil {
		return ""
	}
	return *rule.TargetID
}
