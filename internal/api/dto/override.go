package dto

import (
	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/domain/override"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/validator"
)

type UpsertOverrideRequest struct {
	PlanID      string `json:"plan_id" validate:"required"`
	RetailPrice string `json:"retail_price" validate:"required"`
}

func (r *UpsertOverrideRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	price, err := decimal.NewFromString(r.RetailPrice)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Retail price must be a decimal number").
			Mark(ierr.ErrValidation)
	}
	if !price.IsPositive() {
		return ierr.NewError("retail price must be positive").
			WithHint("Retail price must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// RetailDecimal returns the parsed retail price. Validate must have been
// called first.
func (r *UpsertOverrideRequest) RetailDecimal() decimal.Decimal {
	price, _ := decimal.NewFromString(r.RetailPrice)
	return price
}

type OverrideResponse struct {
	*override.AgentPricingOverride
}

type ListOverridesResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
	Total     int                `json:"total"`
}
