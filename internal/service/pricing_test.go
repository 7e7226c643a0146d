package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roamfare/roamfare/internal/api/dto"
	"github.com/roamfare/roamfare/internal/domain/agent"
	"github.com/roamfare/roamfare/internal/domain/override"
	"github.com/roamfare/roamfare/internal/domain/plan"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/testutil"
	"github.com/roamfare/roamfare/internal/types"
)

type PricingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PricingService
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewPricingService(
		stores.RuleRepo,
		stores.OverrideRepo,
		stores.PlanRepo,
		stores.AgentRepo,
		s.GetLogger(),
	)
}

func (s *PricingServiceSuite) seedAgent(id string, partnerType types.PartnerType) {
	err := s.GetStores().AgentRepo.Create(s.GetContext(), &agent.Agent{
		ID:          id,
		Name:        "Test Agent",
		PartnerType: partnerType,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	})
	s.NoError(err)
}

func (s *PricingServiceSuite) seedPlan(id, supplierPlanID, country string, wholesale string) {
	err := s.GetStores().PlanRepo.Create(s.GetContext(), &plan.Plan{
		ID:             id,
		SupplierPlanID: supplierPlanID,
		Name:           "Test Plan",
		CountryCode:    country,
		WholesalePrice: decimal.RequireFromString(wholesale),
		Currency:       "usd",
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	})
	s.NoError(err)
}

func (s *PricingServiceSuite) seedRule(rule *pricingrule.PricingRule) {
	rule.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICING_RULE)
	rule.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	s.NoError(s.GetStores().RuleRepo.Create(s.GetContext(), rule))
}

func (s *PricingServiceSuite) seedOverride(agentID, planID, retail string) {
	s.NoError(s.GetStores().OverrideRepo.Upsert(s.GetContext(), &override.AgentPricingOverride{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_OVERRIDE),
		AgentID:     agentID,
		PlanID:      planID,
		RetailPrice: decimal.RequireFromString(retail),
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *PricingServiceSuite) TestDefaultMarkupWhenNothingMatches() {
	resp, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("40")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestRuleBeatsDefault() {
	target := "JP"
	s.seedRule(&pricingrule.PricingRule{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupTypeFixed,
		MarkupValue: decimal.RequireFromString("5"),
		Priority:    10,
	})

	resp, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
		CountryCode:    "JP",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("15")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestOverrideBeatsRules() {
	s.seedAgent("agent-1", types.PartnerTypeStandard)
	s.seedPlan("plan-1", "sup-1", "JP", "10")
	s.seedOverride("agent-1", "plan-1", "12.50")

	target := "plan-1"
	s.seedRule(&pricingrule.PricingRule{
		RuleType:    types.RuleTypePlan,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: decimal.RequireFromString("100"),
		Priority:    1,
	})

	resp, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
		AgentID:        "agent-1",
		PlanID:         "plan-1",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("12.50")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestAPIPartnerFallback() {
	s.seedAgent("agent-api", types.PartnerTypeAPI)

	resp, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
		AgentID:        "agent-api",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("13")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestAPIPartnerFallbackOnlyWhenNoRuleMatches() {
	s.seedAgent("agent-api", types.PartnerTypeAPI)

	target := "agent-api"
	s.seedRule(&pricingrule.PricingRule{
		RuleType:    types.RuleTypeAgent,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: decimal.RequireFromString("50"),
		Priority:    10,
	})

	resp, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
		AgentID:        "agent-api",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("15")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestUnknownAgentGetsDefaultMarkup() {
	resp, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
		AgentID:        "no-such-agent",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("40")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestInvalidWholesaleRejected() {
	_, err := s.service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "not-a-number",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

// failingRuleRepo simulates a rule store that is down
type failingRuleRepo struct {
	pricingrule.Repository
}

func (failingRuleRepo) ListActive(ctx context.Context) ([]*pricingrule.PricingRule, error) {
	return nil, ierr.NewError("rule store unavailable").
		Mark(ierr.ErrDatabase)
}

func (s *PricingServiceSuite) TestRuleFetchFailureDegradesToDefault() {
	stores := s.GetStores()
	service := NewPricingService(
		failingRuleRepo{},
		stores.OverrideRepo,
		stores.PlanRepo,
		stores.AgentRepo,
		s.GetLogger(),
	)

	resp, err := service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "100",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("400")), "got %s", resp.RetailPrice)

	// the partner type tier still applies below the rule tier
	s.seedAgent("agent-api", types.PartnerTypeAPI)
	resp, err = service.CalculatePrice(s.GetContext(), dto.CalculatePriceRequest{
		WholesalePrice: "10",
		AgentID:        "agent-api",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("13")), "got %s", resp.RetailPrice)
}

func (s *PricingServiceSuite) TestRuleFetchFailureDegradesBatch() {
	s.seedAgent("agent-1", types.PartnerTypeStandard)
	s.seedPlan("plan-1", "sup-1", "JP", "10")

	stores := s.GetStores()
	service := NewPricingService(
		failingRuleRepo{},
		stores.OverrideRepo,
		stores.PlanRepo,
		stores.AgentRepo,
		s.GetLogger(),
	)

	s.SetContext(testutil.SetupContextForAdmin())
	resp, err := service.CalculateBatch(s.GetContext(), dto.BatchPriceRequest{
		AgentID: "agent-1",
		PlanIDs: []string{"plan-1"},
	})
	s.NoError(err)
	s.True(resp.Prices["plan-1"].Equal(decimal.RequireFromString("40")), "got %s", resp.Prices["plan-1"])
}

func (s *PricingServiceSuite) TestBatchMixesOverridesAndRules() {
	s.seedAgent("agent-1", types.PartnerTypeStandard)
	s.seedPlan("plan-1", "sup-1", "JP", "10")
	s.seedPlan("plan-2", "sup-2", "FR", "20")
	s.seedOverride("agent-1", "plan-1", "11")

	target := "FR"
	s.seedRule(&pricingrule.PricingRule{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: decimal.RequireFromString("100"),
		Priority:    10,
	})

	s.SetContext(testutil.SetupContextForAdmin())
	resp, err := s.service.CalculateBatch(s.GetContext(), dto.BatchPriceRequest{
		AgentID: "agent-1",
		PlanIDs: []string{"plan-1", "plan-2"},
	})
	s.NoError(err)
	s.Len(resp.Prices, 2)
	s.True(resp.Prices["plan-1"].Equal(decimal.RequireFromString("11")))
	s.True(resp.Prices["plan-2"].Equal(decimal.RequireFromString("40")))
}

func (s *PricingServiceSuite) TestBatchOmitsUnknownPlans() {
	s.seedAgent("agent-1", types.PartnerTypeStandard)
	s.seedPlan("plan-1", "sup-1", "JP", "10")

	s.SetContext(testutil.SetupContextForAdmin())
	resp, err := s.service.CalculateBatch(s.GetContext(), dto.BatchPriceRequest{
		AgentID: "agent-1",
		PlanIDs: []string{"plan-1", "plan-missing"},
	})
	s.NoError(err)
	s.Len(resp.Prices, 1)
	s.Contains(resp.Prices, "plan-1")
}

func (s *PricingServiceSuite) TestBatchDeniedForOtherAgent() {
	s.seedAgent("agent-1", types.PartnerTypeStandard)
	s.seedPlan("plan-1", "sup-1", "JP", "10")

	s.SetContext(testutil.SetupContextForAgent("agent-2"))
	_, err := s.service.CalculateBatch(s.GetContext(), dto.BatchPriceRequest{
		AgentID: "agent-1",
		PlanIDs: []string{"plan-1"},
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *PricingServiceSuite) TestBatchAllowedForOwnAgent() {
	s.seedAgent("agent-1", types.PartnerTypeStandard)
	s.seedPlan("plan-1", "sup-1", "JP", "10")

	s.SetContext(testutil.SetupContextForAgent("agent-1"))
	resp, err := s.service.CalculateBatch(s.GetContext(), dto.BatchPriceRequest{
		AgentID: "agent-1",
		PlanIDs: []string{"plan-1"},
	})
	s.NoError(err)
	s.Len(resp.Prices, 1)
}
