package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/roamfare/roamfare/internal/cache"
	"github.com/roamfare/roamfare/internal/config"
	"github.com/roamfare/roamfare/internal/domain/agent"
	"github.com/roamfare/roamfare/internal/domain/override"
	"github.com/roamfare/roamfare/internal/domain/plan"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	RuleRepo     pricingrule.Repository
	OverrideRepo override.Repository
	PlanRepo     plan.Repository
	AgentRepo    agent.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	pubsub *InMemoryPubSub
	cache  cache.Cache
	logger *logger.Logger
}

// SetupTest prepares fresh stores and context before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.logger = logger.L

	s.stores = Stores{
		RuleRepo:     NewInMemoryPricingRuleStore(),
		OverrideRepo: NewInMemoryOverrideStore(),
		PlanRepo:     NewInMemoryPlanStore(),
		AgentRepo:    NewInMemoryAgentStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.pubsub = NewInMemoryPubSub()
	s.cache = cache.Initialize(config.GetDefaultConfig(), s.logger)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

// ClearStores resets all in-memory stores
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.RuleRepo.(*InMemoryPricingRuleStore).Clear()
	s.stores.OverrideRepo.(*InMemoryOverrideStore).Clear()
	s.stores.PlanRepo.(*InMemoryPlanStore).Clear()
	s.stores.AgentRepo.(*InMemoryAgentStore).Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubsub
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}
