package repository

import (
	"github.com/roamfare/roamfare/internal/domain/agent"
	"github.com/roamfare/roamfare/internal/domain/override"
	"github.com/roamfare/roamfare/internal/domain/plan"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	postgresRepo "github.com/roamfare/roamfare/internal/repository/postgres"
)

func NewPricingRuleRepository(db *postgres.DB, logger *logger.Logger) pricingrule.Repository {
	return postgresRepo.NewPricingRuleRepository(db, logger)
}

func NewOverrideRepository(db *postgres.DB, logger *logger.Logger) override.Repository {
	return postgresRepo.NewOverrideRepository(db, logger)
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return postgresRepo.NewPlanRepository(db, logger)
}

func NewAgentRepository(db *postgres.DB, logger *logger.Logger) agent.Repository {
	return postgresRepo.NewAgentRepository(db, logger)
}
