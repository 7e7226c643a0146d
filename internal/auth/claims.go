package auth

// Claims carries the identity extracted from a bearer token or API key
type Claims struct {
	UserID   string
	TenantID string
	// AgentID is set when the caller is bound to a single travel agent
	AgentID string
	Roles   []string
}
