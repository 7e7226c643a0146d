package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roamfare/roamfare/internal/api/dto"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/pubsub"
	"github.com/roamfare/roamfare/internal/testutil"
	"github.com/roamfare/roamfare/internal/types"
)

type PricingRuleServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PricingRuleService
}

func TestPricingRuleService(t *testing.T) {
	suite.Run(t, new(PricingRuleServiceSuite))
}

func (s *PricingRuleServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPricingRuleService(
		s.GetStores().RuleRepo,
		s.GetPubSub(),
		s.GetLogger(),
	)
}

func (s *PricingRuleServiceSuite) TestCreateAndGet() {
	target := "JP"
	resp, err := s.service.CreatePricingRule(s.GetContext(), dto.CreatePricingRuleRequest{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: "150",
		Priority:    10,
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.StatusActive, resp.Status)

	got, err := s.service.GetPricingRule(s.GetContext(), resp.ID)
	s.NoError(err)
	s.True(got.MarkupValue.Equal(decimal.RequireFromString("150")))
}

func (s *PricingRuleServiceSuite) TestCreatePublishesChangeNotification() {
	target := "JP"
	_, err := s.service.CreatePricingRule(s.GetContext(), dto.CreatePricingRuleRequest{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: "150",
	})
	s.NoError(err)
	s.Len(s.GetPubSub().GetMessages(pubsub.TopicRulesChanged), 1)
}

func (s *PricingRuleServiceSuite) TestCreateRejectsMissingTarget() {
	_, err := s.service.CreatePricingRule(s.GetContext(), dto.CreatePricingRuleRequest{
		RuleType:    types.RuleTypeCountry,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: "150",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingRuleServiceSuite) TestCreateRejectsUnknownMarkupType() {
	target := "JP"
	_, err := s.service.CreatePricingRule(s.GetContext(), dto.CreatePricingRuleRequest{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupType("multiplier"),
		MarkupValue: "2",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingRuleServiceSuite) TestUpdateDeactivatesRule() {
	target := "JP"
	created, err := s.service.CreatePricingRule(s.GetContext(), dto.CreatePricingRuleRequest{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: "150",
	})
	s.NoError(err)

	inactive := false
	updated, err := s.service.UpdatePricingRule(s.GetContext(), created.ID, dto.UpdatePricingRuleRequest{
		IsActive: &inactive,
	})
	s.NoError(err)
	s.Equal(types.StatusInactive, updated.Status)

	list, err := s.service.ListPricingRules(s.GetContext())
	s.NoError(err)
	s.Equal(0, list.Total)
}

func (s *PricingRuleServiceSuite) TestDeleteRemovesFromActiveList() {
	target := "JP"
	created, err := s.service.CreatePricingRule(s.GetContext(), dto.CreatePricingRuleRequest{
		RuleType:    types.RuleTypeCountry,
		TargetID:    &target,
		MarkupType:  types.MarkupTypePercent,
		MarkupValue: "150",
	})
	s.NoError(err)

	s.NoError(s.service.DeletePricingRule(s.GetContext(), created.ID))

	_, err = s.service.GetPricingRule(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// create + delete
	s.Len(s.GetPubSub().GetMessages(pubsub.TopicRulesChanged), 2)
}
