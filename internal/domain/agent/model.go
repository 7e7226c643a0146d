package agent

import (
	"github.com/roamfare/roamfare/internal/types"
)

// Agent is a travel agent reselling eSIM plans through the storefront.
type Agent struct {
	ID string `db:"id" json:"id"`

	Name string `db:"name" json:"name"`

	// PartnerType is consulted only as the last pricing fallback tier
	PartnerType types.PartnerType `db:"partner_type" json:"partner_type"`

	types.BaseModel
}
