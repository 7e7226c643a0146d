package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/roamfare/roamfare/internal/api"
	v1 "github.com/roamfare/roamfare/internal/api/v1"
	"github.com/roamfare/roamfare/internal/cache"
	"github.com/roamfare/roamfare/internal/config"
	"github.com/roamfare/roamfare/internal/domain/pricingrule"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/postgres"
	"github.com/roamfare/roamfare/internal/pubsub"
	"github.com/roamfare/roamfare/internal/pubsub/memory"
	"github.com/roamfare/roamfare/internal/repository"
	"github.com/roamfare/roamfare/internal/sentry"
	"github.com/roamfare/roamfare/internal/service"
	"github.com/roamfare/roamfare/internal/validator"
)

// @title Roamfare Pricing API
// @version 1.0
// @description Pricing resolution service for the Roamfare eSIM storefront
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			provideCache,

			// Postgres
			postgres.NewDB,
			providePostgresClient,

			// PubSub
			memory.NewPubSub,
			providePublisher,
			provideSubscriber,

			// Repositories
			provideRuleRepository,
			repository.NewOverrideRepository,
			repository.NewPlanRepository,
			repository.NewAgentRepository,

			// Services
			service.NewCSVProcessor,
			service.NewPricingService,
			service.NewPricingRuleService,
			service.NewOverrideService,
			service.NewBulkImportService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startRuleCacheRefresher,
			startServer,
		),
	)

	app.Run()
}

func provideCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	return cache.Initialize(cfg, log)
}

func providePostgresClient(db *postgres.DB) postgres.IClient {
	return db
}

func providePublisher(ps pubsub.PubSub) pubsub.Publisher {
	return ps
}

func provideSubscriber(ps pubsub.PubSub) pubsub.Subscriber {
	return ps
}

// provideRuleRepository wraps the postgres rule repository with the cache
// decorator so every resolution path shares one cached rule set.
func provideRuleRepository(db *postgres.DB, c cache.Cache, log *logger.Logger) pricingrule.Repository {
	return service.NewCachedRuleRepository(repository.NewPricingRuleRepository(db, log), c, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	pricingService service.PricingService,
	ruleService service.PricingRuleService,
	overrideService service.OverrideService,
	importService service.BulkImportService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(log),
		Pricing:     v1.NewPricingHandler(pricingService, log),
		PricingRule: v1.NewPricingRuleHandler(ruleService, log),
		Override:    v1.NewOverrideHandler(overrideService, importService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, log)
}

func startRuleCacheRefresher(
	lc fx.Lifecycle,
	subscriber pubsub.Subscriber,
	c cache.Cache,
	log *logger.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return service.StartRuleCacheRefresher(ctx, subscriber, c, log)
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
