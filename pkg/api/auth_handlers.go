package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/httputil"
)

// Accounts registers users and logs them in, returning bearer tokens
type Accounts interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	accounts Accounts
	logger   logrus.FieldLogger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(accounts Accounts, logger logrus.FieldLogger) *AuthHandlers {
	return &AuthHandlers{
		accounts: accounts,
		logger:   logger,
	}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.register).Methods("POST")
	router.HandleFunc("/auth/login", h.login).Methods("POST")
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func parseCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return req, false
	}
	if !httputil.RequireNonEmpty(w, req.Username, "username") ||
		!httputil.RequireNonEmpty(w, req.Password, "password") {
		return req, false
	}
	return req, true
}

// register handles POST /auth/register
func (h *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err, msgUserNotFound)
		return
	}

	httputil.WriteSuccess(w, tokenResponse{Token: token})
}

// login handles POST /auth/login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err, msgUserNotFound)
		return
	}

	httputil.WriteSuccess(w, tokenResponse{Token: token})
}
