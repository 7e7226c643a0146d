package dto

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/types"
	"github.com/roamfare/roamfare/internal/validator"
)

type CreatePricingRuleRequest struct {
	RuleType    types.RuleType   `json:"rule_type" validate:"required"`
	TargetID    *string          `json:"target_id,omitempty"`
	AgentFilter *string          `json:"agent_filter,omitempty"`
	MarkupType  types.MarkupType `json:"markup_type" validate:"required"`
	MarkupValue string           `json:"markup_value" validate:"required"`
	// MinOrderAmount and MaxOrderAmount are accepted and stored but not
	// enforced during matching
	MinOrderAmount *string `json:"min_order_amount,omitempty"`
	MaxOrderAmount *string `json:"max_order_amount,omitempty"`
	Priority       int     `json:"priority"`
}

func (r *CreatePricingRuleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if _, err := decimal.NewFromString(r.MarkupValue); err != nil {
		return ierr.WithError(err).
			WithHint("Markup value must be a decimal number").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPricingRule builds the domain model from the request
func (r *CreatePricingRuleRequest) ToPricingRule(ctx context.Context) (*pricingrule.PricingRule, error) {
	markupValue, err := decimal.NewFromString(r.MarkupValue)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Markup value must be a decimal number").
			Mark(ierr.ErrValidation)
	}

	rule := &pricingrule.PricingRule{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICING_RULE),
		RuleType:    r.RuleType,
		TargetID:    r.TargetID,
		AgentFilter: r.AgentFilter,
		MarkupType:  r.MarkupType,
		MarkupValue: markupValue,
		Priority:    r.Priority,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}

	if r.MinOrderAmount != nil {
		minAmount, err := decimal.NewFromString(*r.MinOrderAmount)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Min order amount must be a decimal number").
				Mark(ierr.ErrValidation)
		}
		rule.MinOrderAmount = &minAmount
	}

	if r.MaxOrderAmount != nil {
		maxAmount, err := decimal.NewFromString(*r.MaxOrderAmount)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Max order amount must be a decimal number").
				Mark(ierr.ErrValidation)
		}
		rule.MaxOrderAmount = &maxAmount
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return rule, nil
}

type UpdatePricingRuleRequest struct {
	MarkupType  *types.MarkupType `json:"markup_type,omitempty"`
	MarkupValue *string           `json:"markup_value,omitempty"`
	Priority    *int              `json:"priority,omitempty"`
	IsActive    *bool             `json:"is_active,omitempty"`
}

type PricingRuleResponse struct {
	*pricingrule.PricingRule
}

type ListPricingRulesResponse struct {
	Rules []PricingRuleResponse `json:"rules"`
	Total int                   `json:"total"`
}
