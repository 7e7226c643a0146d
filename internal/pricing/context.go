package pricing

// Context carries the identifiers a caller knows when asking for a price.
// Every field is optional; which ones are present determines which rule types
// can match. It is a resolution input, never persisted.
type Context struct {
	AgentID        string `json:"agent_id,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
	PlanID         string `json:"plan_id,omitempty"`
	SupplierPlanID string `json:"supplier_plan_id,omitempty"`
}
