package testutil

import (
	"context"
	"sync"

	"github.com/roamfare/roamfare/internal/domain/plan"
	ierr "github.com/roamfare/roamfare/internal/errors"
)

// InMemoryPlanStore is an in-memory implementation of plan.Repository
type InMemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*plan.Plan
}

func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		plans: make(map[string]*plan.Plan),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID]; exists {
		return ierr.NewError("plan already exists").
			WithHintf("Plan with ID %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	s.plans[p.ID] = p
	return nil
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.plans[id]
	if !exists {
		return nil, ierr.NewError("plan not found").
			WithHintf("Plan with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPlanStore) ListByIDs(ctx context.Context, ids []string) ([]*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*plan.Plan, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.plans[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// Clear removes all plans from the store
func (s *InMemoryPlanStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = make(map[string]*plan.Plan)
}
