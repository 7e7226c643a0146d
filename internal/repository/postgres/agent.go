package postgres

import (
	"context"

	"github.com/roamfare/roamfare/internal/domain/agent"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	"github.com/roamfare/roamfare/internal/types"
)

type agentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAgentRepository(db *postgres.DB, logger *logger.Logger) agent.Repository {
	return &agentRepository{db: db, logger: logger}
}

func (r *agentRepository) Create(ctx context.Context, a *agent.Agent) error {
	query := `
		INSERT INTO agents (
			id, tenant_id, name, partner_type, status,
			created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :name, :partner_type, :status,
			:created_at, :updated_at, :created_by, :updated_by
		)`

	_, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create agent").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *agentRepository) Get(ctx context.Context, id string) (*agent.Agent, error) {
	var a agent.Agent
	query := `
		SELECT * FROM agents
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status = :status`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusActive,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get agent").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("agent not found").
			WithHintf("No agent with id %s", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&a); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan agent").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}
