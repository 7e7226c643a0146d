package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/api/dto"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/pubsub"
	"github.com/roamfare/roamfare/internal/types"
)

type PricingRuleService interface {
	CreatePricingRule(ctx context.Context, req dto.CreatePricingRuleRequest) (*dto.PricingRuleResponse, error)
	GetPricingRule(ctx context.Context, id string) (*dto.PricingRuleResponse, error)
	ListPricingRules(ctx context.Context) (*dto.ListPricingRulesResponse, error)
	UpdatePricingRule(ctx context.Context, id string, req dto.UpdatePricingRuleRequest) (*dto.PricingRuleResponse, error)
	DeletePricingRule(ctx context.Context, id string) error
}

type pricingRuleService struct {
	ruleRepo  pricingrule.Repository
	publisher pubsub.Publisher
	logger    *logger.Logger
}

func NewPricingRuleService(
	ruleRepo pricingrule.Repository,
	publisher pubsub.Publisher,
	logger *logger.Logger,
) PricingRuleService {
	return &pricingRuleService{
		ruleRepo:  ruleRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *pricingRuleService) CreatePricingRule(ctx context.Context, req dto.CreatePricingRuleRequest) (*dto.PricingRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rule, err := req.ToPricingRule(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	s.notifyRulesChanged(ctx, rule.ID)

	return &dto.PricingRuleResponse{PricingRule: rule}, nil
}

func (s *pricingRuleService) GetPricingRule(ctx context.Context, id string) (*dto.PricingRuleResponse, error) {
	rule, err := s.ruleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PricingRuleResponse{PricingRule: rule}, nil
}

func (s *pricingRuleService) ListPricingRules(ctx context.Context) (*dto.ListPricingRulesResponse, error) {
	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.ListPricingRulesResponse{
		Rules: make([]dto.PricingRuleResponse, len(rules)),
		Total: len(rules),
	}
	for i, rule := range rules {
		response.Rules[i] = dto.PricingRuleResponse{PricingRule: rule}
	}
	return response, nil
}

func (s *pricingRuleService) UpdatePricingRule(ctx context.Context, id string, req dto.UpdatePricingRuleRequest) (*dto.PricingRuleResponse, error) {
	rule, err := s.ruleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MarkupType != nil {
		rule.MarkupType = *req.MarkupType
	}
	if req.MarkupValue != nil {
		markupValue, err := decimal.NewFromString(*req.MarkupValue)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Markup value must be a decimal number").
				Mark(ierr.ErrValidation)
		}
		rule.MarkupValue = markupValue
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.IsActive != nil {
		if *req.IsActive {
			rule.Status = types.StatusActive
		} else {
			rule.Status = types.StatusInactive
		}
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	rule.UpdatedBy = types.GetUserID(ctx)
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	s.notifyRulesChanged(ctx, rule.ID)

	return &dto.PricingRuleResponse{PricingRule: rule}, nil
}

func (s *pricingRuleService) DeletePricingRule(ctx context.Context, id string) error {
	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyRulesChanged(ctx, id)
	return nil
}

// notifyRulesChanged publishes a change notification so every instance drops
// its cached rule set. A failed publish is logged and swallowed; the cache
// expiry bounds how stale a surviving copy can get.
func (s *pricingRuleService) notifyRulesChanged(ctx context.Context, ruleID string) {
	msg := message.NewMessage(watermill.NewUUID(), []byte(ruleID))
	if err := s.publisher.Publish(ctx, pubsub.TopicRulesChanged, msg); err != nil {
		s.logger.Errorw("failed to publish rule change notification",
			"rule_id", ruleID,
			"error", err,
		)
	}
}
