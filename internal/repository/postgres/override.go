package postgres

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/roamfare/roamfare/internal/domain/override"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	"github.com/roamfare/roamfare/internal/types"
)

// insertBatchSize caps a single multi-row insert to respect backend
// payload limits during bulk imports
const insertBatchSize = 500

type overrideRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOverrideRepository(db *postgres.DB, logger *logger.Logger) override.Repository {
	return &overrideRepository{db: db, logger: logger}
}

func (r *overrideRepository) Get(ctx context.Context, agentID, planID string) (*override.AgentPricingOverride, error) {
	var ovr override.AgentPricingOverride
	query := `
		SELECT * FROM agent_pricing_overrides
		WHERE agent_id = :agent_id
		AND plan_id = :plan_id
		AND tenant_id = :tenant_id
		AND status = :status`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"agent_id":  agentID,
		"plan_id":   planID,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusActive,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get pricing override").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("pricing override not found").
			WithHintf("No override for agent %s and plan %s", agentID, planID).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&ovr); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan pricing override").
			Mark(ierr.ErrDatabase)
	}
	return &ovr, nil
}

func (r *overrideRepository) ListByAgent(ctx context.Context, agentID string) ([]*override.AgentPricingOverride, error) {
	overrides := make([]*override.AgentPricingOverride, 0)
	query := `
		SELECT * FROM agent_pricing_overrides
		WHERE agent_id = :agent_id
		AND tenant_id = :tenant_id
		AND status = :status
		ORDER BY plan_id ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"agent_id":  agentID,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusActive,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list pricing overrides").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	for rows.Next() {
		var ovr override.AgentPricingOverride
		if err := rows.StructScan(&ovr); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan pricing override").
				Mark(ierr.ErrDatabase)
		}
		overrides = append(overrides, &ovr)
	}

	return overrides, nil
}

func (r *overrideRepository) Upsert(ctx context.Context, ovr *override.AgentPricingOverride) error {
	ovr.UpdatedAt = time.Now().UTC()
	ovr.UpdatedBy = types.GetUserID(ctx)

	query := `
		INSERT INTO agent_pricing_overrides (
			id, tenant_id, agent_id, plan_id, retail_price,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :agent_id, :plan_id, :retail_price,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (tenant_id, agent_id, plan_id) DO UPDATE SET
			retail_price = EXCLUDED.retail_price,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	_, err := r.db.NamedExecContext(ctx, query, ovr)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to upsert pricing override").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *overrideRepository) Delete(ctx context.Context, agentID, planID string) error {
	query := `
		DELETE FROM agent_pricing_overrides
		WHERE agent_id = :agent_id
		AND plan_id = :plan_id
		AND tenant_id = :tenant_id`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"agent_id":  agentID,
		"plan_id":   planID,
		"tenant_id": types.GetTenantID(ctx),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete pricing override").
			Mark(ierr.ErrDatabase)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("pricing override not found").
			WithHintf("No override for agent %s and plan %s", agentID, planID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *overrideRepository) DeleteByAgent(ctx context.Context, agentID string) error {
	query := `
		DELETE FROM agent_pricing_overrides
		WHERE agent_id = :agent_id
		AND tenant_id = :tenant_id`

	_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"agent_id":  agentID,
		"tenant_id": types.GetTenantID(ctx),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete agent pricing overrides").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *overrideRepository) InsertBatch(ctx context.Context, records []*override.AgentPricingOverride) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO agent_pricing_overrides (
			id, tenant_id, agent_id, plan_id, retail_price,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :agent_id, :plan_id, :retail_price,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	for _, chunk := range lo.Chunk(records, insertBatchSize) {
		r.logger.Debugw("inserting override batch",
			"agent_id", chunk[0].AgentID,
			"batch_size", len(chunk),
		)

		if _, err := r.db.NamedExecContext(ctx, query, chunk); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to insert pricing override batch").
				Mark(ierr.ErrDatabase)
		}
	}

	return nil
}
