// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application are defined here so that key
// usage stays discoverable and typed.
//
// USAGE PATTERN:
//
//	ctx = contextkeys.WithIdentity(ctx, identity)
//	identity, ok := contextkeys.GetIdentity(ctx)
package contextkeys

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/auth"
)

// Key is the type for context keys to prevent collisions
type Key string

const (
	// IdentityKey contains auth.Identity
	// Set by: middleware.AuthMiddleware (pkg/middleware/auth.go)
	// Used by: request logging
	IdentityKey Key = "identity"

	// RequestIDKey contains request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware
	// Used by: Logger, access log
	RequestIDKey Key = "request_id"

	// LoggerKey contains logrus.FieldLogger
	// Set by: httputil.LoggingMiddleware
	// Used by: Handlers that need structured logging with request context
	LoggerKey Key = "logger"
)

// WithIdentity adds the authenticated caller to the context
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity retrieves the authenticated caller from context
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(auth.Identity)
	return identity, ok
}

// WithRequestID adds request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithLogger adds logger to the context
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// GetLogger retrieves logger from context
func GetLogger(ctx context.Context) (logrus.FieldLogger, bool) {
	logger, ok := ctx.Value(LoggerKey).(logrus.FieldLogger)
	return logger, ok
}
