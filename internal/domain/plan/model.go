package plan

import (
	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/types"
)

// Plan is an eSIM data plan from the supplier catalog. The engine only reads
// plans; catalog sync is owned by the storefront backend.
type Plan struct {
	ID string `db:"id" json:"id"`

	// SupplierPlanID is the upstream supplier's identifier for the same plan;
	// plan rules may target either identifier
	SupplierPlanID string `db:"supplier_plan_id" json:"supplier_plan_id"`

	Name string `db:"name" json:"name"`

	// CountryCode is the ISO 3166-1 alpha-2 destination country
	CountryCode string `db:"country_code" json:"country_code"`

	// WholesalePrice is the cost paid to the supplier, in Currency units
	WholesalePrice decimal.Decimal `db:"wholesale_price" json:"wholesale_price"`

	// Currency 3 digit ISO currency code in lowercase ex usd, eur, gbp
	Currency string `db:"currency" json:"currency"`

	types.BaseModel
}
