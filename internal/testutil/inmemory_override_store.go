package testutil

import (
	"context"
	"sync"

	"github.com/roamfare/roamfare/internal/domain/override"
	ierr "github.com/roamfare/roamfare/internal/errors"
)

// InMemoryOverrideStore is an in-memory implementation of override.Repository
type InMemoryOverrideStore struct {
	mu sync.RWMutex
	// keyed by agentID then planID, mirroring the unique constraint
	overrides map[string]map[string]*override.AgentPricingOverride
}

func NewInMemoryOverrideStore() *InMemoryOverrideStore {
	return &InMemoryOverrideStore{
		overrides: make(map[string]map[string]*override.AgentPricingOverride),
	}
}

func (s *InMemoryOverrideStore) Get(ctx context.Context, agentID, planID string) (*override.AgentPricingOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if byPlan, ok := s.overrides[agentID]; ok {
		if ovr, ok := byPlan[planID]; ok {
			return ovr, nil
		}
	}
	return nil, ierr.NewError("override not found").
		WithHintf("No override for agent %s and plan %s", agentID, planID).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryOverrideStore) ListByAgent(ctx context.Context, agentID string) ([]*override.AgentPricingOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*override.AgentPricingOverride, 0)
	for _, ovr := range s.overrides[agentID] {
		result = append(result, ovr)
	}
	return result, nil
}

func (s *InMemoryOverrideStore) Upsert(ctx context.Context, ovr *override.AgentPricingOverride) error {
	if ovr == nil {
		return ierr.NewError("override cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.overrides[ovr.AgentID]; !ok {
		s.overrides[ovr.AgentID] = make(map[string]*override.AgentPricingOverride)
	}
	s.overrides[ovr.AgentID][ovr.PlanID] = ovr
	return nil
}

func (s *InMemoryOverrideStore) Delete(ctx context.Context, agentID, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPlan, ok := s.overrides[agentID]
	if !ok {
		return ierr.NewError("override not found").
			WithHintf("No override for agent %s and plan %s", agentID, planID).
			Mark(ierr.ErrNotFound)
	}
	if _, ok := byPlan[planID]; !ok {
		return ierr.NewError("override not found").
			WithHintf("No override for agent %s and plan %s", agentID, planID).
			Mark(ierr.ErrNotFound)
	}
	delete(byPlan, planID)
	return nil
}

func (s *InMemoryOverrideStore) DeleteByAgent(ctx context.Context, agentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, agentID)
	return nil
}

func (s *InMemoryOverrideStore) InsertBatch(ctx context.Context, records []*override.AgentPricingOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ovr := range records {
		if _, ok := s.overrides[ovr.AgentID]; !ok {
			s.overrides[ovr.AgentID] = make(map[string]*override.AgentPricingOverride)
		}
		if _, exists := s.overrides[ovr.AgentID][ovr.PlanID]; exists {
			return ierr.NewError("override already exists").
				WithHintf("Duplicate override for agent %s and plan %s", ovr.AgentID, ovr.PlanID).
				Mark(ierr.ErrAlreadyExists)
		}
		s.overrides[ovr.AgentID][ovr.PlanID] = ovr
	}
	return nil
}

// CountByAgent returns the number of overrides stored for the agent
func (s *InMemoryOverrideStore) CountByAgent(agentID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overrides[agentID])
}

// Clear removes all overrides from the store
func (s *InMemoryOverrideStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]map[string]*override.AgentPricingOverride)
}
