package shared

import (
	"context"
	"sparkle/shared/constant"
)

// Caller is the identity the auth middleware attached to the request.
type Caller struct {
	UserID     string
	Email      string
	Role       string
	BusinessID string
}

func CallerFromContext(ctx context.Context) Caller {
	var caller Caller

	caller.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	caller.Email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	caller.Role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
	caller.BusinessID, _ = ctx.Value(constant.ContextKeyBusinessID).(string)

	return caller
}

func (c Caller) IsAdmin() bool {
	return c.Role == constant.RoleAdmin
}

func (c Caller) Authenticated() bool {
	return c.UserID != ""
}

// WithCaller is the inverse of CallerFromContext.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, caller.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, caller.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, caller.Role)

	return context.WithValue(ctx, constant.ContextKeyBusinessID, caller.BusinessID)
}
