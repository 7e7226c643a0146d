package testutil

import (
	"context"
	"sync"

	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/types"
)

// InMemoryPricingRuleStore is an in-memory implementation of pricingrule.Repository
type InMemoryPricingRuleStore struct {
	mu    sync.RWMutex
	rules map[string]*pricingrule.PricingRule
	// order preserves insertion order so ListActive is deterministic, which
	// the stable tie-break in rule selection depends on
	order []string
}

func NewInMemoryPricingRuleStore() *InMemoryPricingRuleStore {
	return &InMemoryPricingRuleStore{
		rules: make(map[string]*pricingrule.PricingRule),
	}
}

func (s *InMemoryPricingRuleStore) Create(ctx context.Context, rule *pricingrule.PricingRule) error {
	if rule == nil {
		return ierr.NewError("rule cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; exists {
		return ierr.NewError("pricing rule already exists").
			WithHintf("Pricing rule with ID %s already exists", rule.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	s.rules[rule.ID] = rule
	s.order = append(s.order, rule.ID)
	return nil
}

func (s *InMemoryPricingRuleStore) Get(ctx context.Context, id string) (*pricingrule.PricingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rule, exists := s.rules[id]
	if !exists || rule.Status == types.StatusDeleted {
		return nil, ierr.NewError("pricing rule not found").
			WithHintf("Pricing rule with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return rule, nil
}

func (s *InMemoryPricingRuleStore) ListActive(ctx context.Context) ([]*pricingrule.PricingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID := types.GetTenantID(ctx)
	result := make([]*pricingrule.PricingRule, 0, len(s.order))
	for _, id := range s.order {
		rule := s.rules[id]
		if rule.Status != types.StatusActive {
			continue
		}
		if tenantID != "" && rule.TenantID != tenantID {
			continue
		}
		result = append(result, rule)
	}
	return result, nil
}

func (s *InMemoryPricingRuleStore) Update(ctx context.Context, rule *pricingrule.PricingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; !exists {
		return ierr.NewError("pricing rule not found").
			WithHintf("Pricing rule with ID %s was not found", rule.ID).
			Mark(ierr.ErrNotFound)
	}
	s.rules[rule.ID] = rule
	return nil
}

func (s *InMemoryPricingRuleStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, exists := s.rules[id]
	if !exists || rule.Status == types.StatusDeleted {
		return ierr.NewError("pricing rule not found").
			WithHintf("Pricing rule with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	rule.Status = types.StatusDeleted
	return nil
}

// Clear removes all rules from the store
func (s *InMemoryPricingRuleStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = make(map[string]*pricingrule.PricingRule)
	s.order = nil
}
