package dto

import (
	"github.com/shopspring/decimal"

	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/pricing"
	"github.com/roamfare/roamfare/internal/validator"
)

// CalculatePriceRequest resolves one wholesale price against the rule set.
// Amounts travel as strings to keep full decimal precision on the wire.
type CalculatePriceRequest struct {
	WholesalePrice string `json:"wholesale_price" validate:"required"`

	AgentID        string `json:"agent_id,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
	PlanID         string `json:"plan_id,omitempty"`
	SupplierPlanID string `json:"supplier_plan_id,omitempty"`
}

func (r *CalculatePriceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	wholesale, err := decimal.NewFromString(r.WholesalePrice)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Wholesale price must be a decimal number").
			Mark(ierr.ErrValidation)
	}
	if wholesale.IsNegative() {
		return ierr.NewError("wholesale price must not be negative").
			WithHint("Wholesale price must be zero or positive").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// WholesaleDecimal returns the parsed wholesale price. Validate must have
// been called first.
func (r *CalculatePriceRequest) WholesaleDecimal() decimal.Decimal {
	wholesale, _ := decimal.NewFromString(r.WholesalePrice)
	return wholesale
}

// ToContext builds the resolution context from the request
func (r *CalculatePriceRequest) ToContext() pricing.Context {
	return pricing.Context{
		AgentID:        r.AgentID,
		CountryCode:    r.CountryCode,
		PlanID:         r.PlanID,
		SupplierPlanID: r.SupplierPlanID,
	}
}

// PriceResponse is the result of a single price resolution
type PriceResponse struct {
	RetailPrice decimal.Decimal `json:"retail_price"`
}

// BatchPriceRequest prices a list of plans for one agent
type BatchPriceRequest struct {
	AgentID string   `json:"agent_id" validate:"required"`
	PlanIDs []string `json:"plan_ids" validate:"required,min=1"`
}

func (r *BatchPriceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// BatchPriceResponse maps plan id to retail price. Plans missing from the
// catalog are omitted rather than errored.
type BatchPriceResponse struct {
	AgentID string                     `json:"agent_id"`
	Prices  map[string]decimal.Decimal `json:"prices"`
}
