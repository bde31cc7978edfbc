// Package middleware provides the bearer token guard for protected routes.
//
// # AuthMiddleware
//
//	guard := middleware.NewAuthMiddleware(codec, middleware.WithAuthLogger(logger))
//	router.Handle("/todos", guard.Require(h.listTasks)).Methods("GET")
//
// Authenticate returns an AuthResult, one of:
//
//	Authenticated{Identity}  the token verified; Identity.UserID is the caller
//	Rejected{Reason, Err}    missing_header, invalid_scheme or invalid_token
//
// Require maps every Rejected to the same 401 {"error":"unauthenticated"}
// response, so a client cannot tell an expired token from a forged one. The
// reason is logged at debug level and reported to an optional
// RejectionObserver.
//
// Authenticated requests carry the identity in their context
// (contextkeys.GetIdentity) and their request logger gains a user_id field.
//
// # Related Packages
//
//   - pkg/auth: TokenCodec, the TokenValidator used in production
//   - pkg/contextkeys: identity and logger context keys
package middleware
