package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roamfare/roamfare/internal/auth"
	"github.com/roamfare/roamfare/internal/config"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/types"
)

// AuthenticateMiddleware authenticates requests based on either:
// 1. JWT token in the Authorization header as a Bearer token
// 2. API key in the x-api-key header (or configured header name)
// It sets the caller's identity in the request context for downstream handlers
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	validator := auth.NewTokenValidator(cfg)

	return func(c *gin.Context) {
		// First check for API key
		apiKeyHeader := c.GetHeader(cfg.Auth.APIKey.Header)
		if apiKeyHeader != "" {
			claims, valid := auth.ValidateAPIKey(cfg, apiKeyHeader)
			if !valid {
				logger.Debugw("invalid api key")
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			setClaims(c, claims)
			c.Next()
			return
		}

		// Fall back to a bearer token
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Debugw("invalid bearer token", "error", err)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	ctx := c.Request.Context()
	ctx = types.SetTenantID(ctx, claims.TenantID)
	ctx = types.SetUserID(ctx, claims.UserID)
	if claims.AgentID != "" {
		ctx = types.SetAgentID(ctx, claims.AgentID)
	}
	if len(claims.Roles) > 0 {
		ctx = types.SetRoles(ctx, claims.Roles)
	}
	c.Request = c.Request.WithContext(ctx)
}
