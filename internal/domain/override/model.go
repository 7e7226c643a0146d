package override

import (
	"github.com/shopspring/decimal"

	"github.com/roamfare/roamfare/internal/types"
)

// AgentPricingOverride pins the retail price of one plan for one agent,
// bypassing rule-based pricing entirely. (AgentID, PlanID) is unique per tenant.
type AgentPricingOverride struct {
	ID string `db:"id" json:"id"`

	AgentID string `db:"agent_id" json:"agent_id"`

	PlanID string `db:"plan_id" json:"plan_id"`

	// RetailPrice is the explicit final price. The 5% minimum-margin invariant
	// (retail >= wholesale * 1.05) is enforced at the write boundary, not here.
	RetailPrice decimal.Decimal `db:"retail_price" json:"retail_price"`

	types.BaseModel
}
