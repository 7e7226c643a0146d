package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/roamfare/roamfare/internal/api/dto"
	"github.com/roamfare/roamfare/internal/domain/plan"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/testutil"
	"github.com/roamfare/roamfare/internal/types"
)

type OverrideServiceSuite struct {
	testutil.BaseServiceTestSuite
	service OverrideService
}

func TestOverrideService(t *testing.T) {
	suite.Run(t, new(OverrideServiceSuite))
}

func (s *OverrideServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewOverrideService(
		stores.OverrideRepo,
		stores.PlanRepo,
		s.GetLogger(),
	)

	s.NoError(stores.PlanRepo.Create(s.GetContext(), &plan.Plan{
		ID:             "plan-1",
		SupplierPlanID: "sup-1",
		Name:           "Japan 5GB",
		CountryCode:    "JP",
		WholesalePrice: decimal.RequireFromString("10"),
		Currency:       "usd",
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *OverrideServiceSuite) TestUpsertAndList() {
	resp, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "15",
	})
	s.NoError(err)
	s.Equal("agent-1", resp.AgentID)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("15")))

	list, err := s.service.ListOverrides(s.GetContext(), "agent-1")
	s.NoError(err)
	s.Equal(1, list.Total)
}

func (s *OverrideServiceSuite) TestUpsertReplacesExisting() {
	_, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "15",
	})
	s.NoError(err)

	resp, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "18",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("18")))

	list, err := s.service.ListOverrides(s.GetContext(), "agent-1")
	s.NoError(err)
	s.Equal(1, list.Total)
}

func (s *OverrideServiceSuite) TestExactMinimumMarginAccepted() {
	// wholesale 10, minimum retail is exactly 10.50
	resp, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "10.50",
	})
	s.NoError(err)
	s.True(resp.RetailPrice.Equal(decimal.RequireFromString("10.50")))
}

func (s *OverrideServiceSuite) TestBelowMinimumMarginRejected() {
	_, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "10.49",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OverrideServiceSuite) TestUnknownPlanRejected() {
	_, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-missing",
		RetailPrice: "15",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *OverrideServiceSuite) TestNonPositivePriceRejected() {
	_, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "0",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OverrideServiceSuite) TestDeleteOverride() {
	_, err := s.service.UpsertOverride(s.GetContext(), "agent-1", dto.UpsertOverrideRequest{
		PlanID:      "plan-1",
		RetailPrice: "15",
	})
	s.NoError(err)

	s.NoError(s.service.DeleteOverride(s.GetContext(), "agent-1", "plan-1"))

	list, err := s.service.ListOverrides(s.GetContext(), "agent-1")
	s.NoError(err)
	s.Equal(0, list.Total)
}

func (s *OverrideServiceSuite) TestDeleteMissingOverride() {
	err := s.service.DeleteOverride(s.GetContext(), "agent-1", "plan-1")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
