package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/api/dto"
	"github.com/roamfare/roamfare/internal/domain/agent"
	"github.com/roamfare/roamfare/internal/domain/override"
	"github.com/roamfare/roamfare/internal/domain/plan"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/pricing"
	"github.com/roamfare/roamfare/internal/types"
)

type PricingService interface {
	CalculatePrice(ctx context.Context, req dto.CalculatePriceRequest) (*dto.PriceResponse, error)
	CalculateBatch(ctx context.Context, req dto.BatchPriceRequest) (*dto.BatchPriceResponse, error)
}

type pricingService struct {
	ruleRepo     pricingrule.Repository
	overrideRepo override.Repository
	planRepo     plan.Repository
	agentRepo    agent.Repository
	logger       *logger.Logger
}

func NewPricingService(
	ruleRepo pricingrule.Repository,
	overrideRepo override.Repository,
	planRepo plan.Repository,
	agentRepo agent.Repository,
	logger *logger.Logger,
) PricingService {
	return &pricingService{
		ruleRepo:     ruleRepo,
		overrideRepo: overrideRepo,
		planRepo:     planRepo,
		agentRepo:    agentRepo,
		logger:       logger,
	}
}

// CalculatePrice resolves one wholesale price through the full chain:
// agent override, then the rule set, then the partner type fallback, then
// the default markup. It never fails to produce a price for a valid request.
func (s *pricingService) CalculatePrice(ctx context.Context, req dto.CalculatePriceRequest) (*dto.PriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pctx := req.ToContext()

	if pctx.AgentID != "" && pctx.PlanID != "" {
		if ovr, err := s.overrideRepo.Get(ctx, pctx.AgentID, pctx.PlanID); err == nil {
			return &dto.PriceResponse{RetailPrice: ovr.RetailPrice}, nil
		} else if !ierr.IsNotFound(err) {
			return nil, err
		}
	}

	retail, err := s.resolveRetail(ctx, s.loadRules(ctx), pctx, req.WholesaleDecimal())
	if err != nil {
		return nil, err
	}

	return &dto.PriceResponse{RetailPrice: retail}, nil
}

// CalculateBatch prices a list of plans for one agent in a single pass.
// Non-admin callers may only price their own agent. Plans missing from the
// catalog are omitted from the result rather than failing the batch.
func (s *pricingService) CalculateBatch(ctx context.Context, req dto.BatchPriceRequest) (*dto.BatchPriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.authorizeAgentAccess(ctx, req.AgentID); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.ListByIDs(ctx, req.PlanIDs)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.ListByAgent(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	overrideByPlan := make(map[string]*override.AgentPricingOverride, len(overrides))
	for _, ovr := range overrides {
		overrideByPlan[ovr.PlanID] = ovr
	}

	rules := s.loadRules(ctx)

	prices := make(map[string]decimal.Decimal, len(plans))
	for _, p := range plans {
		if ovr, ok := overrideByPlan[p.ID]; ok {
			prices[p.ID] = ovr.RetailPrice
			continue
		}

		pctx := pricing.Context{
			AgentID:        req.AgentID,
			CountryCode:    p.CountryCode,
			PlanID:         p.ID,
			SupplierPlanID: p.SupplierPlanID,
		}
		retail, err := s.resolveRetail(ctx, rules, pctx, p.WholesalePrice)
		if err != nil {
			return nil, err
		}
		prices[p.ID] = retail
	}

	return &dto.BatchPriceResponse{
		AgentID: req.AgentID,
		Prices:  prices,
	}, nil
}

// loadRules fetches the active rule set. A fetch failure degrades resolution
// to an empty rule set (and thus the fallback tiers) rather than failing the
// price calculation; the storefront must always get a price.
func (s *pricingService) loadRules(ctx context.Context) []*pricingrule.PricingRule {
	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		s.logger.Errorw("failed to load pricing rules, degrading to default markup", "error", err)
		return nil
	}
	return rules
}

// resolveRetail runs match and select over the rule set, falling back to the
// agent's partner type multiplier and finally to the default markup when no
// rule matches.
func (s *pricingService) resolveRetail(
	ctx context.Context,
	rules []*pricingrule.PricingRule,
	pctx pricing.Context,
	wholesale decimal.Decimal,
) (decimal.Decimal, error) {
	selected := pricing.Select(pricing.Candidates(rules, pctx), pctx)
	if selected != nil {
		return pricing.Calculate(wholesale, selected), nil
	}

	if pctx.AgentID != "" {
		a, err := s.agentRepo.Get(ctx, pctx.AgentID)
		if err != nil && !ierr.IsNotFound(err) {
			return decimal.Zero, err
		}
		if err == nil && a.PartnerType == types.PartnerTypeAPI {
			return wholesale.Mul(types.APIPartnerMultiplier), nil
		}
	}

	return pricing.Calculate(wholesale, nil), nil
}

// authorizeAgentAccess permits admins everywhere and agent callers only on
// their own agent id.
func (s *pricingService) authorizeAgentAccess(ctx context.Context, agentID string) error {
	if types.IsAdmin(ctx) {
		return nil
	}
	if callerAgent := types.GetAgentID(ctx); callerAgent == agentID {
		return nil
	}
	return ierr.NewError("access denied to agent pricing").
		WithHintf("You are not allowed to view pricing for agent %s", agentID).
		Mark(ierr.ErrPermissionDenied)
}
