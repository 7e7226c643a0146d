package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/roamfare/roamfare/internal/config"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/types"
)

// TokenValidator validates bearer tokens issued by the storefront backend
type TokenValidator struct {
	cfg config.AuthConfig
}

func NewTokenValidator(cfg *config.Configuration) *TokenValidator {
	return &TokenValidator{cfg: cfg.Auth}
}

// ValidateToken parses and verifies an HS256 token and returns its claims
func (v *TokenValidator) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(v.cfg.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	tenantID, tenantOk := claims["tenant_id"].(string)
	if !tenantOk {
		tenantID = types.DefaultTenantID
	}

	result := &Claims{
		UserID:   userID,
		TenantID: tenantID,
	}

	if agentID, ok := claims["agent_id"].(string); ok {
		result.AgentID = agentID
	}

	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				result.Roles = append(result.Roles, role)
			}
		}
	}

	return result, nil
}

// GenerateToken issues an HS256 token for the given identity. Used by
// provisioning scripts and tests; the storefront backend normally issues
// tokens itself with the shared secret.
func (v *TokenValidator) GenerateToken(claims *Claims) (string, error) {
	expiration := time.Now().Add(30 * 24 * time.Hour)

	mapClaims := jwt.MapClaims{
		"user_id":   claims.UserID,
		"tenant_id": claims.TenantID,
		"exp":       expiration.Unix(),
		"iat":       time.Now().Unix(),
	}
	if claims.AgentID != "" {
		mapClaims["agent_id"] = claims.AgentID
	}
	if len(claims.Roles) > 0 {
		mapClaims["roles"] = claims.Roles
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString([]byte(v.cfg.Secret))
}
