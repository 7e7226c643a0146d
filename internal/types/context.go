package types

import (
	"context"
	"fmt"

	"github.com/samber/lo"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxTenantID  ContextKey = "ctx_tenant_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxAgentID   ContextKey = "ctx_agent_id"
	CtxJWT       ContextKey = "ctx_jwt"
	CtxRoles     ContextKey = "ctx_roles"

	// Default values
	DefaultTenantID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"

	// RoleAdmin grants access to every agent's pricing data
	RoleAdmin = "admin"
)

// Header names surfaced on responses
const (
	HeaderRequestID = "X-Request-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(CtxTenantID).(string); ok {
		return tenantID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetAgentID returns the agent the authenticated caller belongs to.
// Empty for back-office users that are not bound to a single agent.
func GetAgentID(ctx context.Context) string {
	if agentID, ok := ctx.Value(CtxAgentID).(string); ok {
		return agentID
	}
	return ""
}

// GetRoles returns the roles granted to the authenticated caller
func GetRoles(ctx context.Context) []string {
	if roles, ok := ctx.Value(CtxRoles).([]string); ok {
		return roles
	}
	return []string{}
}

// IsAdmin reports whether the caller carries the admin role
func IsAdmin(ctx context.Context) bool {
	return lo.Contains(GetRoles(ctx), RoleAdmin)
}

// SetTenantID sets the tenant ID in the context
func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetAgentID sets the caller's agent ID in the context
func SetAgentID(ctx context.Context, agentID string) context.Context {
	return context.WithValue(ctx, CtxAgentID, agentID)
}

// SetRoles sets the caller's roles in the context
func SetRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, CtxRoles, roles)
}

// ValidateTenantContext validates that the required tenant context fields are present
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	tenantID := GetTenantID(ctx)
	if tenantID == "" {
		return fmt.Errorf("no tenant context found in context")
	}

	return nil
}
