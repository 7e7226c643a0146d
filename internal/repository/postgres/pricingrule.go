package postgres

import (
	"context"
	"time"

	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	"github.com/roamfare/roamfare/internal/types"
)

type pricingRuleRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPricingRuleRepository(db *postgres.DB, logger *logger.Logger) pricingrule.Repository {
	return &pricingRuleRepository{db: db, logger: logger}
}

func (r *pricingRuleRepository) Create(ctx context.Context, rule *pricingrule.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (
			id, tenant_id, rule_type, target_id, agent_filter, markup_type,
			markup_value, min_order_amount, max_order_amount, priority,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :rule_type, :target_id, :agent_filter, :markup_type,
			:markup_value, :min_order_amount, :max_order_amount, :priority,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating pricing rule",
		"rule_id", rule.ID,
		"tenant_id", rule.TenantID,
	)

	_, err := r.db.NamedExecContext(ctx, query, rule)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create pricing rule").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *pricingRuleRepository) Get(ctx context.Context, id string) (*pricingrule.PricingRule, error) {
	var rule pricingrule.PricingRule
	query := `
		SELECT * FROM pricing_rules
		WHERE id = :id
		AND tenant_id = :tenant_id
		AND status != :status`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"id":        id,
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get pricing rule").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("pricing rule not found").
			WithHintf("No pricing rule with id %s", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&rule); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan pricing rule").
			Mark(ierr.ErrDatabase)
	}
	return &rule, nil
}

func (r *pricingRuleRepository) ListActive(ctx context.Context) ([]*pricingrule.PricingRule, error) {
	rules := make([]*pricingrule.PricingRule, 0)
	query := `
		SELECT * FROM pricing_rules
		WHERE tenant_id = :tenant_id
		AND status = :status
		ORDER BY priority ASC, created_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"tenant_id": types.GetTenantID(ctx),
		"status":    types.StatusActive,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list active pricing rules").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	for rows.Next() {
		var rule pricingrule.PricingRule
		if err := rows.StructScan(&rule); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan pricing rule").
				Mark(ierr.ErrDatabase)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *pricingRuleRepository) Update(ctx context.Context, rule *pricingrule.PricingRule) error {
	rule.UpdatedAt = time.Now().UTC()
	rule.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE pricing_rules SET
			rule_type = :rule_type,
			target_id = :target_id,
			agent_filter = :agent_filter,
			markup_type = :markup_type,
			markup_value = :markup_value,
			min_order_amount = :min_order_amount,
			max_order_amount = :max_order_amount,
			priority = :priority,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id`

	result, err := r.db.NamedExecContext(ctx, query, rule)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update pricing rule").
			Mark(ierr.ErrDatabase)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("pricing rule not found").
			WithHintf("No pricing rule with id %s", rule.ID).
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *pricingRuleRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE pricing_rules SET
			status = :deleted,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND tenant_id = :tenant_id AND status != :deleted`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"tenant_id":  types.GetTenantID(ctx),
		"deleted":    types.StatusDeleted,
		"updated_at": time.Now().UTC(),
		"updated_by": types.GetUserID(ctx),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete pricing rule").
			Mark(ierr.ErrDatabase)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ierr.NewError("pricing rule not found").
			WithHintf("No pricing rule with id %s", id).
			Mark(ierr.ErrNotFound)
	}

	return nil
}
