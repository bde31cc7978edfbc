package middleware

import (
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/auth"
	"github.com/platinummonkey/tasklist/pkg/contextkeys"
	"github.com/platinummonkey/tasklist/pkg/httputil"
)

// Rejection reasons. They are logged and counted, never sent to the client.
const (
	ReasonMissingHeader = "missing_header"
	ReasonInvalidScheme = "invalid_scheme"
	ReasonInvalidToken  = "invalid_token"
)

// TokenValidator resolves a bearer token to a user id
type TokenValidator interface {
	Validate(token string) (int64, error)
}

// RejectionObserver is told about every rejected request
type RejectionObserver interface {
	ObserveAuthRejection(reason string)
}

// AuthResult is the outcome of authenticating a request: either
// Authenticated or Rejected
type AuthResult interface {
	isAuthResult()
}

// Authenticated carries the identity of a verified caller
type Authenticated struct {
	Identity auth.Identity
}

// Rejected carries why a request was not authenticated
type Rejected struct {
	Reason string
	Err    error
}

func (Authenticated) isAuthResult() {}
func (Rejected) isAuthResult()      {}

// IdentityHandler is a handler that only runs for authenticated callers
type IdentityHandler func(w http.ResponseWriter, r *http.Request, identity auth.Identity)

// AuthMiddleware guards protected operations with bearer token authentication
type AuthMiddleware struct {
	tokens   TokenValidator
	logger   logrus.FieldLogger
	observer RejectionObserver
}

// AuthOption configures an AuthMiddleware
type AuthOption func(*AuthMiddleware)

// WithAuthLogger sets the logger used when no request-scoped logger exists
func WithAuthLogger(logger logrus.FieldLogger) AuthOption {
	return func(m *AuthMiddleware) {
		m.logger = logger
	}
}

// WithRejectionObserver reports rejection reasons to o
func WithRejectionObserver(o RejectionObserver) AuthOption {
	return func(m *AuthMiddleware) {
		m.observer = o
	}
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokens TokenValidator, opts ...AuthOption) *AuthMiddleware {
	m := &AuthMiddleware{tokens: tokens}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		m.logger = discard
	}
	return m
}

// Authenticate inspects the Authorization header. It has no side effects.
func (m *AuthMiddleware) Authenticate(r *http.Request) AuthResult {
	// Format: "Bearer <token>"
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Rejected{Reason: ReasonMissingHeader, Err: auth.ErrUnauthenticated}
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return Rejected{Reason: ReasonInvalidScheme, Err: auth.ErrUnauthenticated}
	}

	userID, err := m.tokens.Validate(parts[1])
	if err != nil {
		return Rejected{Reason: ReasonInvalidToken, Err: err}
	}
	return Authenticated{Identity: auth.Identity{UserID: userID}}
}

// Require runs next only for authenticated requests. Every rejection gets
// the same 401 body regardless of reason.
func (m *AuthMiddleware) Require(next IdentityHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch result := m.Authenticate(r).(type) {
		case Authenticated:
			ctx := contextkeys.WithIdentity(r.Context(), result.Identity)
			if logger, ok := contextkeys.GetLogger(ctx); ok {
				ctx = contextkeys.WithLogger(ctx, logger.WithField("user_id", result.Identity.UserID))
			}
			next(w, r.WithContext(ctx), result.Identity)
		case Rejected:
			m.reject(w, r, result)
		}
	})
}

// Handler adapts Require to plain http.Handler chains; the identity is read
// back with contextkeys.GetIdentity
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return m.Require(func(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, result Rejected) {
	logger, ok := contextkeys.GetLogger(r.Context())
	if !ok {
		logger = m.logger
	}
	logger.WithFields(logrus.Fields{
		"reason": result.Reason,
		"error":  result.Err,
	}).Debug("Rejected unauthenticated request")

	if m.observer != nil {
		m.observer.ObserveAuthRejection(result.Reason)
	}
	httputil.WriteUnauthorized(w, auth.ErrUnauthenticated.Error())
}
