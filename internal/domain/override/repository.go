package override

import (
	"context"
)

type Repository interface {
	// Get returns the override for (agentID, planID) or ErrNotFound
	Get(ctx context.Context, agentID, planID string) (*AgentPricingOverride, error)
	ListByAgent(ctx context.Context, agentID string) ([]*AgentPricingOverride, error)
	Upsert(ctx context.Context, ovr *AgentPricingOverride) error
	Delete(ctx context.Context, agentID, planID string) error
	// DeleteByAgent removes every override for the agent; used by the
	// replace-all bulk import
	DeleteByAgent(ctx context.Context, agentID string) error
	// InsertBatch inserts records in fixed-size chunks to respect payload limits
	InsertBatch(ctx context.Context, records []*AgentPricingOverride) error
}
