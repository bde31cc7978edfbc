// Package config provides application configuration management.
//
// # Sources
//
// Values are layered, later sources winning:
//
//  1. DefaultConfig
//  2. the YAML file named by TASKLIST_CONFIG_FILE, when set
//  3. TASKLIST_* environment variables
//
// Validate runs last; the token secret has no default and must be set.
//
// # Configuration Structure
//
// Server settings:
//
//	TASKLIST_SERVER_HOST="0.0.0.0"
//	TASKLIST_SERVER_PORT="8001"
//	TASKLIST_SERVER_HEALTH_PORT="9090"
//	TASKLIST_SERVER_STATIC_DIR="./public"
//	TASKLIST_SERVER_SHUTDOWN_TIMEOUT="30s"
//
// Storage settings:
//
//	TASKLIST_STORAGE_DRIVER="sqlite3"  # sqlite3, sqlite, postgres
//	TASKLIST_STORAGE_DSN="db.sqlite"
//
// Auth settings:
//
//	TASKLIST_AUTH_TOKEN_SECRET="..."   # required
//	TASKLIST_AUTH_TOKEN_TTL="24h"
//	TASKLIST_AUTH_HASH_COST="8"
//
// Observability settings:
//
//	TASKLIST_OBSERVABILITY_LOG_LEVEL="info"  # trace, debug, info, warn, error
//	TASKLIST_OBSERVABILITY_LOG_FORMAT="json" # json, text
//	TASKLIST_OBSERVABILITY_OTEL_ENABLED="true"
//	TASKLIST_OBSERVABILITY_OTEL_ENDPOINT="otel-collector:4317"
//
// The YAML file uses the lower_snake_case field names:
//
//	server:
//	  port: "8001"
//	auth:
//	  token_ttl: 12h
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
package config
