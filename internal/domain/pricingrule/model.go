package pricingrule

import (
	"github.com/shopspring/decimal"

	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/types"
)

// PricingRule transforms a wholesale price into a retail price for every context
// its target matches. Exactly one rule wins per resolution; ties on priority are
// broken by specificity.
type PricingRule struct {
	// ID uuid identifier for the rule
	ID string `db:"id" json:"id"`

	// RuleType determines what TargetID refers to
	RuleType types.RuleType `db:"rule_type" json:"rule_type"`

	// TargetID is a plan id / supplier plan id, an agent id or a country code
	// depending on RuleType; nil for default rules
	TargetID *string `db:"target_id" json:"target_id"`

	// AgentFilter narrows a plan rule to one specific agent
	AgentFilter *string `db:"agent_filter" json:"agent_filter"`

	// MarkupType selects the markup semantics ex percent, fixed, fixed_price
	MarkupType types.MarkupType `db:"markup_type" json:"markup_type"`

	// MarkupValue is a percentage, an additive amount or the absolute retail
	// price depending on MarkupType
	MarkupValue decimal.Decimal `db:"markup_value" json:"markup_value"`

	// MinOrderAmount and MaxOrderAmount are carried for future enforcement;
	// the matcher never applies them
	MinOrderAmount *decimal.Decimal `db:"min_order_amount" json:"min_order_amount"`
	MaxOrderAmount *decimal.Decimal `db:"max_order_amount" json:"max_order_amount"`

	// Priority orders rules; a lower value always beats a higher one
	Priority int `db:"priority" json:"priority"`

	types.BaseModel
}

// IsActive reports whether the rule participates in matching
func (r *PricingRule) IsActive() bool {
	return r.Status == types.StatusActive
}

// Validate checks the rule's discriminators and target shape
func (r *PricingRule) Validate() error {
	if err := r.RuleType.Validate(); err != nil {
		return err
	}

	if err := r.MarkupType.Validate(); err != nil {
		return err
	}

	if r.RuleType != types.RuleTypeDefault && (r.TargetID == nil || *r.TargetID == "") {
		return ierr.NewError("target id is required").
			WithHintf("Rules of type %s must set a target", r.RuleType).
			Mark(ierr.ErrValidation)
	}

	if r.AgentFilter != nil && r.RuleType != types.RuleTypePlan {
		return ierr.NewError("agent filter is only valid on plan rules").
			WithHint("Agent filter can only narrow a plan rule").
			Mark(ierr.ErrValidation)
	}

	if r.MarkupValue.IsNegative() {
		return ierr.NewError("markup value must not be negative").
			WithHint("Markup value must be zero or positive").
			Mark(ierr.ErrValidation)
	}

	return nil
}
