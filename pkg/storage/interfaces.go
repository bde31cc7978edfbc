package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a user or an owned task does not exist.
	// A task owned by someone else is reported the same way as a missing one.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when the users uniqueness constraint
	// rejects an insert
	ErrDuplicateUsername = errors.New("username already exists")
)

// User is a registered account as persisted in the users table
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose hash
}

// Task is a single todo entry owned by exactly one user
type Task struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"user_id"`
	Description string `json:"task"`
	Completed   bool   `json:"completed"`
}

// UserStore persists credentials
type UserStore interface {
	// CreateUser inserts a user and returns its id. Uniqueness is enforced by
	// the database, never by a pre-check.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// TaskStore persists tasks. Every method is scoped to an owning user id.
type TaskStore interface {
	ListTasks(ctx context.Context, ownerID int64) ([]Task, error)
	CreateTask(ctx context.Context, ownerID int64, description string) (*Task, error)
	UpdateTaskCompleted(ctx context.Context, ownerID, taskID int64, completed bool) error
	DeleteTask(ctx context.Context, ownerID, taskID int64) error
}

// HealthChecker reports backend reachability
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Store is the full persistence surface used by the service
type Store interface {
	UserStore
	TaskStore
	HealthChecker
	Close() error
}

// Driver names accepted by Config.Driver
const (
	DriverPostgres = "postgres" // github.com/lib/pq
	DriverSQLite3  = "sqlite3"  // github.com/mattn/go-sqlite3 (cgo)
	DriverSQLite   = "sqlite"   // modernc.org/sqlite (pure Go)
)

// Config for storage backend
type Config struct {
	Driver         string        `yaml:"driver" env:"DRIVER"`
	DSN            string        `yaml:"dsn" env:"DSN"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT"`
	MaxLifetime    time.Duration `yaml:"max_lifetime" env:"MAX_LIFETIME"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Driver:         DriverSQLite3,
		DSN:            "db.sqlite",
		ConnectTimeout: 10 * time.Second,
		MaxLifetime:    time.Hour,
	}
}

// SupportedDriver reports whether name is a driver the sql store can open
func SupportedDriver(name string) bool {
	switch name {
	case DriverPostgres, DriverSQLite3, DriverSQLite:
		return true
	}
	return false
}
