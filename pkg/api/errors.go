package api

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/auth"
	"github.com/platinummonkey/tasklist/pkg/httputil"
	"github.com/platinummonkey/tasklist/pkg/observability"
	"github.com/platinummonkey/tasklist/pkg/storage"
)

// Client-facing messages for domain errors
const (
	msgUsernameTaken      = "username already exists"
	msgInvalidCredentials = "invalid credentials"
	msgUserNotFound       = "user not found"
	msgTaskNotFound       = "task not found"
)

// writeError maps err to a status code. Anything unrecognised, including
// *auth.HashError, is logged and surfaces as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, logger logrus.FieldLogger, err error, notFound string) {
	switch {
	case errors.Is(err, storage.ErrDuplicateUsername):
		httputil.WriteConflict(w, msgUsernameTaken)
	case errors.Is(err, storage.ErrNotFound):
		httputil.WriteNotFoundError(w, notFound)
	case errors.Is(err, auth.ErrInvalidCredentials):
		httputil.WriteUnauthorized(w, msgInvalidCredentials)
	case errors.Is(err, auth.ErrPasswordTooLong):
		httputil.WriteBadRequest(w, auth.ErrPasswordTooLong.Error())
	default:
		observability.FromContext(r.Context(), logger).WithError(err).Error("Request failed")
		httputil.WriteInternalError(w)
	}
}
