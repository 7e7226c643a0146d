package testutil

import (
	"context"
	"sync"

	"github.com/roamfare/roamfare/internal/domain/agent"
	ierr "github.com/roamfare/roamfare/internal/errors"
)

// InMemoryAgentStore is an in-memory implementation of agent.Repository
type InMemoryAgentStore struct {
	mu     sync.RWMutex
	agents map[string]*agent.Agent
}

func NewInMemoryAgentStore() *InMemoryAgentStore {
	return &InMemoryAgentStore{
		agents: make(map[string]*agent.Agent),
	}
}

func (s *InMemoryAgentStore) Create(ctx context.Context, a *agent.Agent) error {
	if a == nil {
		return ierr.NewError("agent cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[a.ID]; exists {
		return ierr.NewError("agent already exists").
			WithHintf("Agent with ID %s already exists", a.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	s.agents[a.ID] = a
	return nil
}

func (s *InMemoryAgentStore) Get(ctx context.Context, id string) (*agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.agents[id]
	if !exists {
		return nil, ierr.NewError("agent not found").
			WithHintf("Agent with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

// Clear removes all agents from the store
func (s *InMemoryAgentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = make(map[string]*agent.Agent)
}
