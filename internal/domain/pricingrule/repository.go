package pricingrule

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, rule *PricingRule) error
	Get(ctx context.Context, id string) (*PricingRule, error)
	// ListActive returns every active rule for the tenant. The engine always
	// works on the full active set; there is no incremental fetch.
	ListActive(ctx context.Context) ([]*PricingRule, error)
	Update(ctx context.Context, rule *PricingRule) error
	Delete(ctx context.Context, id string) error
}
