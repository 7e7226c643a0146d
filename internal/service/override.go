package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/api/dto"
	"github.com/roamfare/roamfare/internal/domain/override"
	"github.com/roamfare/roamfare/internal/domain/plan"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/types"
)

type OverrideService interface {
	UpsertOverride(ctx context.Context, agentID string, req dto.UpsertOverrideRequest) (*dto.OverrideResponse, error)
	ListOverrides(ctx context.Context, agentID string) (*dto.ListOverridesResponse, error)
	DeleteOverride(ctx context.Context, agentID, planID string) error
}

type overrideService struct {
	overrideRepo override.Repository
	planRepo     plan.Repository
	logger       *logger.Logger
}

func NewOverrideService(
	overrideRepo override.Repository,
	planRepo plan.Repository,
	logger *logger.Logger,
) OverrideService {
	return &overrideService{
		overrideRepo: overrideRepo,
		planRepo:     planRepo,
		logger:       logger,
	}
}

// UpsertOverride pins the retail price of one plan for one agent. The retail
// price must keep at least a 5% margin over the plan's wholesale price;
// anything lower is rejected, never silently clamped.
func (s *overrideService) UpsertOverride(ctx context.Context, agentID string, req dto.UpsertOverrideRequest) (*dto.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.planRepo.Get(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	retail := req.RetailDecimal()
	if err := validateMargin(retail, p.WholesalePrice); err != nil {
		return nil, err
	}

	ovr := &override.AgentPricingOverride{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_OVERRIDE),
		AgentID:     agentID,
		PlanID:      req.PlanID,
		RetailPrice: retail,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}

	if err := s.overrideRepo.Upsert(ctx, ovr); err != nil {
		return nil, err
	}

	s.logger.Infow("override upserted",
		"agent_id", agentID,
		"plan_id", req.PlanID,
		"retail_price", retail,
	)

	return &dto.OverrideResponse{AgentPricingOverride: ovr}, nil
}

func (s *overrideService) ListOverrides(ctx context.Context, agentID string) (*dto.ListOverridesResponse, error) {
	overrides, err := s.overrideRepo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	response := &dto.ListOverridesResponse{
		Overrides: make([]dto.OverrideResponse, len(overrides)),
		Total:     len(overrides),
	}
	for i, ovr := range overrides {
		response.Overrides[i] = dto.OverrideResponse{AgentPricingOverride: ovr}
	}
	return response, nil
}

func (s *overrideService) DeleteOverride(ctx context.Context, agentID, planID string) error {
	return s.overrideRepo.Delete(ctx, agentID, planID)
}

// validateMargin rejects a retail price below wholesale * 1.05. Exactly 1.05x
// is allowed.
func validateMargin(retail, wholesale decimal.Decimal) error {
	minRetail := wholesale.Mul(types.MinMarginMultiplier)
	if retail.LessThan(minRetail) {
		return ierr.NewError("retail price below minimum margin").
			WithHintf("Retail price must be at least %s (5%% over wholesale)", minRetail.String()).
			WithReportableDetails(map[string]any{
				"retail_price":    retail.String(),
				"wholesale_price": wholesale.String(),
				"minimum_retail":  minRetail.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
