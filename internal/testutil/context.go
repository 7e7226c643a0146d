package testutil

import (
	"context"

	"github.com/roamfare/roamfare/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// SetupContextForAgent builds a context for an agent-scoped caller without the
// admin role, the way the auth middleware would for an agent API key.
func SetupContextForAgent(agentID string) context.Context {
	ctx := SetupContext()
	ctx = types.SetAgentID(ctx, agentID)
	ctx = types.SetRoles(ctx, []string{"agent"})
	return ctx
}

// SetupContextForAdmin builds a context carrying the admin role.
func SetupContextForAdmin() context.Context {
	ctx := SetupContext()
	ctx = types.SetRoles(ctx, []string{types.RoleAdmin})
	return ctx
}
