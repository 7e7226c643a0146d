package plan

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, plan *Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	// ListByIDs returns the plans that exist for the given ids; unknown ids are
	// simply absent from the result
	ListByIDs(ctx context.Context, ids []string) ([]*Plan, error)
}
