package types

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/roamfare/roamfare/internal/errors"
)

// RuleType narrows what a pricing rule targets. Matching is fail-closed:
// a rule whose type is not one of these values never matches any context.
type RuleType string

const (
	RuleTypePlan    RuleType = "plan"
	RuleTypeAgent   RuleType = "agent"
	RuleTypeCountry RuleType = "country"
	RuleTypeDefault RuleType = "default"
)

func (rt RuleType) Validate() error {
	allowedTypes := []RuleType{
		RuleTypePlan,
		RuleTypeAgent,
		RuleTypeCountry,
		RuleTypeDefault,
	}

	if !lo.Contains(allowedTypes, rt) {
		return ierr.NewError("invalid rule type").
			WithHint("Rule type must be plan, agent, country or default").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// MarkupType selects how a rule's markup value transforms a wholesale price.
type MarkupType string

const (
	// MarkupTypePercent adds a percentage of the wholesale price, e.g. 300 means 4x
	MarkupTypePercent MarkupType = "percent"
	// MarkupTypeFixed adds an absolute amount on top of the wholesale price
	MarkupTypeFixed MarkupType = "fixed"
	// MarkupTypeFixedPrice sets the retail price verbatim, ignoring the wholesale price
	MarkupTypeFixedPrice MarkupType = "fixed_price"
)

func (mt MarkupType) Validate() error {
	allowedTypes := []MarkupType{
		MarkupTypePercent,
		MarkupTypeFixed,
		MarkupTypeFixedPrice,
	}

	if !lo.Contains(allowedTypes, mt) {
		return ierr.NewError("invalid markup type").
			WithHint("Markup type must be percent, fixed or fixed_price").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// PartnerType classifies an agent. Used only as the last pricing fallback tier
// when no override and no rule applies.
type PartnerType string

const (
	PartnerTypeStandard PartnerType = "standard"
	PartnerTypeAPI      PartnerType = "api_partner"
)

func (pt PartnerType) Validate() error {
	allowedTypes := []PartnerType{
		PartnerTypeStandard,
		PartnerTypeAPI,
	}

	if !lo.Contains(allowedTypes, pt) {
		return ierr.NewError("invalid partner type").
			WithHint("Partner type must be standard or api_partner").
			Mark(ierr.ErrValidation)
	}

	return nil
}

var (
	// DefaultMarkupPercent is the synthetic markup applied when no rule matches (4x wholesale)
	DefaultMarkupPercent = decimal.NewFromInt(300)

	// APIPartnerMultiplier is the flat multiplier for api_partner agents when neither
	// an override nor a rule applies
	APIPartnerMultiplier = decimal.NewFromFloat(1.3)

	// MinMarginMultiplier is the lowest allowed retail/wholesale ratio for overrides (5% margin)
	MinMarginMultiplier = decimal.NewFromFloat(1.05)
)
