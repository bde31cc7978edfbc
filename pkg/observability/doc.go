// Package observability provides structured logging, Prometheus metrics,
// health probes, OpenTelemetry export and ordered shutdown.
//
// # Structured Logging
//
//	logger, err := observability.NewLogger("info", observability.FormatJSON, os.Stdout)
//	observability.FromContext(r.Context(), logger).Info("Task created")
//
// Loggers are logrus; request-scoped entries carry request_id and user_id.
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	router.Use(observability.HTTPMetricsMiddleware(metrics))
//
// Metrics implements the store observer (per operation counts, errors and
// durations) and the auth observers (register/login outcomes, guard
// rejections). HTTP series are labelled with the mux route template.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(store, version)
//	observability.RegisterHealthRoutes(opsMux, checker)
//
// /health and /health/ready ping the store, /health/live always answers 200.
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, cfg, logger)
//	defer providers.Shutdown(ctx)
//
// OTelMetrics mirrors the storage and auth metrics on an OTel meter, and
// InstrumentHandler adds an otelhttp server span per request.
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/httputil: Request logging middleware
package observability
