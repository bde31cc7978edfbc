package api

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/httputil"
	"github.com/platinummonkey/tasklist/pkg/middleware"
	"github.com/platinummonkey/tasklist/pkg/observability"
	"github.com/platinummonkey/tasklist/pkg/storage"
)

// Server is the task-list HTTP API
type Server struct {
	router       *mux.Router
	logger       logrus.FieldLogger
	metrics      *observability.Metrics
	staticDir    string
	maxBodyBytes int64
	tracing      bool
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithLogger sets the access and error logger
func WithLogger(logger logrus.FieldLogger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics instruments every matched route
func WithMetrics(metrics *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithStaticDir serves files from dir for paths no route matches
func WithStaticDir(dir string) ServerOption {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithMaxBodyBytes limits request bodies
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithTracing wraps the handler in an otelhttp server span
func WithTracing() ServerOption {
	return func(s *Server) {
		s.tracing = true
	}
}

// NewServer creates the API server and registers all routes
func NewServer(accounts Accounts, tasks storage.TaskStore, guard *middleware.AuthMiddleware, opts ...ServerOption) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.logger = discard
	}

	if s.metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))
	}

	NewAuthHandlers(accounts, s.logger).RegisterRoutes(s.router)
	NewTaskHandlers(tasks, guard, s.logger).RegisterRoutes(s.router)

	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	if s.staticDir != "" {
		s.router.NotFoundHandler = http.FileServer(http.Dir(s.staticDir))
	} else {
		s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteNotFoundError(w, "not found")
		})
	}

	return s
}

// Handler returns the router wrapped in request id, access logging, panic
// recovery and body size limiting
func (s *Server) Handler() http.Handler {
	handler := httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
		httputil.MaxBytesMiddleware(s.maxBodyBytes),
	)(s.router)

	if s.tracing {
		handler = observability.InstrumentHandler(handler, "tasklist-api")
	}
	return handler
}
