package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/platinummonkey/tasklist/pkg/storage"
)

// Observer receives the outcome of every store operation
type Observer interface {
	ObserveStorageOperation(operation string, duration time.Duration, err error)
}

// Store implements storage.Store on top of database/sql
type Store struct {
	db       *sql.DB
	driver   string
	guard    *Guard
	observer Observer
}

// Option configures a Store
type Option func(*Store)

// WithObserver reports operation durations and failures to o
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observer = o
	}
}

var _ storage.Store = (*Store)(nil)

// New wraps an already opened database. driver selects the dialect used for
// schema creation and constraint error classification.
func New(db *sql.DB, driver string, opts ...Option) *Store {
	s := &Store{
		db:     db,
		driver: driver,
		guard:  NewGuard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the configured database and verifies the connection
func Open(ctx context.Context, cfg storage.Config, opts ...Option) (*Store, error) {
	if !storage.SupportedDriver(cfg.Driver) {
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("storage DSN is required")
	}

	db, err := sql.Open(cfg.Driver, withForeignKeys(cfg.Driver, cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", cfg.Driver, err)
	}

	// One shared connection. SQLite connections are never recycled so an
	// in-memory database survives for the process lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if cfg.Driver == storage.DriverPostgres {
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Driver, err)
	}

	return New(db, cfg.Driver, opts...), nil
}

// DB returns the underlying pool for instrumentation. Queries issued on it
// bypass the guard.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the database/sql driver name of the store
func (s *Store) Driver() string {
	return s.driver
}

// HealthCheck pings the database through the guard
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.do("health_check", func() error {
		if err := s.db.PingContext(ctx); err != nil {
			return fmt.Errorf("database unhealthy: %w", err)
		}
		return nil
	})
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// do runs a single guarded operation and reports it to the observer
func (s *Store) do(operation string, fn func() error) error {
	return s.guard.Do(func() error {
		start := time.Now()
		err := fn()
		if s.observer != nil {
			s.observer.ObserveStorageOperation(operation, time.Since(start), err)
		}
		return err
	})
}
