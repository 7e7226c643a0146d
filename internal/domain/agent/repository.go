package agent

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, agent *Agent) error
	Get(ctx context.Context, id string) (*Agent, error)
}
