package middleware

import (
	"context"

	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

const RoleAdmin = "admin"

func InjectUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

func InjectRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func Role(ctx context.Context) string {
	v, _ := ctx.Value(roleKey).(string)
	return v
}

func IsAdmin(ctx context.Context) bool { return Role(ctx) == RoleAdmin }

func RequestIDFromContext(ctx context.Context) string {
	return observability.RequestID(ctx)
}
