package middleware

import (
	"context"
	"log/slog"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of every value this package stores in a request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey   = contextKey("logger")
	identityCtxKey = contextKey("identity")
)

// GetLoggerFromCtx returns the request-scoped logger, or the default logger outside a request.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// WithIdentity stores the authenticated caller in ctx.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// GetIdentityFromCtx returns the authenticated caller stored by AuthMiddleware.
func GetIdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(domain.Identity)
	return identity, ok && identity.UserID != ""
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	identity, ok := GetIdentityFromCtx(c.Request.Context())
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
