package postgres

import (
	"context"
	"strings"

	"github.com/roamfare/roamfare/internal/domain/plan"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	"github.com/roamfare/roamfare/internal/types"
)

type planRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return &planRepository{db: db, logger: logger}
}

func (r *planRepository) Create(ctx context.Context, p *plan.Plan) error {
	query := `
		INSERT INTO plans (
			id, tenant_id, supplier_plan_id, name, country_code,
			wholesale_price, currency, status, created_at, updated_at,
			created_by, updated_by
		) VALUES (
			:id, :tenant_id, :supplier_plan_id, :name, :country_code,
			:wholesale_price, :currency, :status, :created_at, :updated_at,
			:created_by, :updated_by
		)`

	_, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*plan.Plan, error) {
	var p plan.Plan
	query := `
		SELECT * FROM plans
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
			WithHint("Failed to get plan").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("plan not found").
			WithHintf("No plan with id %s", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan plan").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *planRepository) ListByIDs(ctx context.Context, ids []string) ([]*plan.Plan, error) {
	plans := make([]*plan.Plan, 0, len(ids))
	if len(ids) == 0 {
		return plans, nil
	}

	query := `
		SELECT * FROM plans
		WHERE tenant_id = :tenant_id
		AND status = :status
		AND id = ANY(string_to_array(:plan_ids, ','))`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusActive,
		"plan_ids":  strings.Join(ids, ","),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list plans").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	for rows.Next() {
		var p plan.Plan
		if err := rows.StructScan(&p); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan plan").
				Mark(ierr.ErrDatabase)
		}
		plans = append(plans, &p)
	}

	return plans, nil
}
