package testutil

import (
	"context"

	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient is a mock implementation of postgres client for testing.
// WithTx runs the function directly; the in-memory stores have no notion of
// rollback so tests assert on outcomes, not on transactional isolation.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
