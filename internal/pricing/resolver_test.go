package pricing

import (
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/types"
)

func activeRule(id string, ruleType types.RuleType, target string, priority int) *pricingrule.PricingRule {
	r := &pricingrule.PricingRule{
		ID:          id,
		RuleType:    ruleType,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: decimal.NewFromInt(100),
		Priority:    priority,
	}
	if target != "" {
		r.TargetID = lo.ToPtr(target)
	}
	r.Status = types.StatusActive
	return r
}

func TestCandidates(t *testing.T) {
	ctx := Context{
		AgentID:        "agent-1",
		CountryCode:    "JP",
		PlanID:         "plan-1",
		SupplierPlanID: "sup-plan-1",
	}

	planRule := activeRule("r-plan", types.RuleTypePlan, "plan-1", 10)
	supplierPlanRule := activeRule("r-sup", types.RuleTypePlan, "sup-plan-1", 10)
	agentRule := activeRule("r-agent", types.RuleTypeAgent, "agent-1", 10)
	countryRule := activeRule("r-country", types.RuleTypeCountry, "JP", 10)
	defaultRule := activeRule("r-default", types.RuleTypeDefault, "", 99)

	otherPlan := activeRule("r-other-plan", types.RuleTypePlan, "plan-2", 10)
	otherAgent := activeRule("r-other-agent", types.RuleTypeAgent, "agent-2", 10)
	otherCountry := activeRule("r-other-country", types.RuleTypeCountry, "US", 10)
	unknownType := activeRule("r-unknown", types.RuleType("supplier_plan"), "sup-plan-1", 1)
	inactive := activeRule("r-inactive", types.RuleTypeCountry, "JP", 1)
	inactive.Status = types.StatusInactive

	rules := []*pricingrule.PricingRule{
		planRule, supplierPlanRule, agentRule, countryRule, defaultRule,
		otherPlan, otherAgent, otherCountry, unknownType, inactive,
	}

	got := Candidates(rules, ctx)
	gotIDs := lo.Map(got, func(r *pricingrule.PricingRule, _ int) string { return r.ID })

	assert.ElementsMatch(t,
		[]string{"r-plan", "r-sup", "r-agent", "r-country", "r-default"},
		gotIDs,
	)
}

func TestCandidatesEmptyContextOnlyMatchesDefault(t *testing.T) {
	rules := []*pricingrule.PricingRule{
		activeRule("r-plan", types.RuleTypePlan, "plan-1", 1),
		activeRule("r-agent", types.RuleTypeAgent, "agent-1", 1),
		activeRule("r-country", types.RuleTypeCountry, "JP", 1),
		activeRule("r-default", types.RuleTypeDefault, "", 99),
	}

	got := Candidates(rules, Context{})
	assert.Len(t, got, 1)
	assert.Equal(t, "r-default", got[0].ID)
}

func TestSelectPriorityWinsOverSpecificity(t *testing.T) {
	ctx := Context{AgentID: "agent-1", CountryCode: "JP", PlanID: "plan-1"}

	countryRule := activeRule("r-country", types.RuleTypeCountry, "JP", 1)
	planRule := activeRule("r-plan", types.RuleTypePlan, "plan-1", 2)

	got := Select([]*pricingrule.PricingRule{countryRule, planRule}, ctx)
	assert.Equal(t, "r-country", got.ID)

	// Order of candidates must not matter
	got = Select([]*pricingrule.PricingRule{planRule, countryRule}, ctx)
	assert.Equal(t, "r-country", got.ID)
}

func TestSelectSpecificityBreaksPriorityTies(t *testing.T) {
	ctx := Context{AgentID: "agent-1", CountryCode: "JP", PlanID: "plan-1"}

	countryRule := activeRule("r-country", types.RuleTypeCountry, "JP", 1)
	planRule := activeRule("r-plan", types.RuleTypePlan, "plan-1", 1)

	got := Select([]*pricingrule.PricingRule{countryRule, planRule}, ctx)
	assert.Equal(t, "r-plan", got.ID)
}

func TestSelectAgentFilterOutranksPlainPlanRule(t *testing.T) {
	ctx := Context{AgentID: "agent-1", PlanID: "plan-1"}

	planRule := activeRule("r-plan", types.RuleTypePlan, "plan-1", 1)
	agentPlanRule := activeRule("r-agent-plan", types.RuleTypePlan, "plan-1", 1)
	agentPlanRule.AgentFilter = lo.ToPtr("agent-1")

	got := Select([]*pricingrule.PricingRule{planRule, agentPlanRule}, ctx)
	assert.Equal(t, "r-agent-plan", got.ID)
}

func TestCandidatesAgentFilterExcludesOtherAgents(t *testing.T) {
	planRule := activeRule("r-plan", types.RuleTypePlan, "plan-1", 1)
	filteredRule := activeRule("r-filtered", types.RuleTypePlan, "plan-1", 1)
	filteredRule.AgentFilter = lo.ToPtr("agent-2")

	got := Candidates(
		[]*pricingrule.PricingRule{planRule, filteredRule},
		Context{AgentID: "agent-1", PlanID: "plan-1"},
	)
	gotIDs := lo.Map(got, func(r *pricingrule.PricingRule, _ int) string { return r.ID })
	assert.Equal(t, []string{"r-plan"}, gotIDs)
}

func TestSelectStableOnFullTie(t *testing.T) {
	ctx := Context{CountryCode: "JP"}

	first := activeRule("r-first", types.RuleTypeCountry, "JP", 5)
	second := activeRule("r-second", types.RuleTypeCountry, "JP", 5)

	got := Select([]*pricingrule.PricingRule{first, second}, ctx)
	assert.Equal(t, "r-first", got.ID)
}

func TestSelectEmptyReturnsNil(t *testing.T) {
	assert.Nil(t, Select(nil, Context{}))
	assert.Nil(t, Select([]*pricingrule.PricingRule{}, Context{}))
}

func TestResolveEndToEnd(t *testing.T) {
	t.Run("no rules falls back to 4x default", func(t *testing.T) {
		got := Resolve(nil, Context{}, decimal.NewFromInt(100))
		assert.True(t, decimal.NewFromInt(400).Equal(got), "got %s", got)
	})

	t.Run("default percent rule", func(t *testing.T) {
		rules := []*pricingrule.PricingRule{
			func() *pricingrule.PricingRule {
				r := activeRule("r-default", types.RuleTypeDefault, "", 99)
				r.MarkupValue = decimal.NewFromInt(300)
				return r
			}(),
		}
		got := Resolve(rules, Context{AgentID: "A1"}, decimal.NewFromInt(10))
		assert.True(t, decimal.NewFromInt(40).Equal(got), "got %s", got)
	})

	t.Run("country fixed rule beats the default", func(t *testing.T) {
		countryRule := activeRule("r-country", types.RuleTypeCountry, "JP", 1)
		countryRule.MarkupType = types.MarkupTypeFixed
		countryRule.MarkupValue = decimal.NewFromInt(5)

		defaultRule := activeRule("r-default", types.RuleTypeDefault, "", 99)
		defaultRule.MarkupValue = decimal.NewFromInt(300)

		got := Resolve(
			[]*pricingrule.PricingRule{countryRule, defaultRule},
			Context{CountryCode: "JP"},
			decimal.NewFromInt(10),
		)
		assert.True(t, decimal.NewFromInt(15).Equal(got), "got %s", got)
	})
}
