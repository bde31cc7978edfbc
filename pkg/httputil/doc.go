// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Response Helpers
//
//	httputil.WriteSuccess(w, task)
//	httputil.WriteBadRequest(w, "username is required")
//	httputil.WriteUnauthorized(w, "unauthenticated")
//	httputil.WriteInternalError(w) // body is always {"error":"internal server error"}
//
// Every error body has the shape {"error": "..."}.
//
// # Request Parsing
//
//	var req updateTaskRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
//
// Optional JSON fields are decoded into pointers and checked with
// RequirePresent so that a missing boolean is not mistaken for false.
//
// # Middleware
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.MaxBytesMiddleware(1<<20),
//	)(router)
//
// RequestIDMiddleware must run before LoggingMiddleware for access log lines
// to carry the request id.
package httputil
