package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	v1 "github.com/roamfare/roamfare/internal/api/v1"
	"github.com/roamfare/roamfare/internal/config"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/rest/middleware"
	"github.com/roamfare/roamfare/internal/types"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Pricing     *v1.PricingHandler
	PricingRule *v1.PricingRuleHandler
	Override    *v1.OverrideHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthenticateMiddleware(cfg, logger))
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	pricing := router.Group("/pricing")
	{
		pricing.POST("/calculate", handlers.Pricing.CalculatePrice)
		pricing.POST("/batch", handlers.Pricing.CalculateBatch)

		rules := pricing.Group("/rules")
		{
			rules.POST("", handlers.PricingRule.CreatePricingRule)
			rules.GET("", handlers.PricingRule.ListPricingRules)
			rules.GET("/:id", handlers.PricingRule.GetPricingRule)
			rules.PUT("/:id", handlers.PricingRule.UpdatePricingRule)
			rules.DELETE("/:id", handlers.PricingRule.DeletePricingRule)
		}
	}

	agents := router.Group("/agents")
	{
		agents.GET("/:id/overrides/template", handlers.Override.DownloadTemplate)
		agents.PUT("/:id/overrides", handlers.Override.UpsertOverride)
		agents.GET("/:id/overrides", handlers.Override.ListOverrides)
		agents.DELETE("/:id/overrides/:plan_id", handlers.Override.DeleteOverride)
		agents.POST("/:id/overrides/import", handlers.Override.ImportOverrides)
	}
}
