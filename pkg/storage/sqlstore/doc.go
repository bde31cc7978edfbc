// Package sqlstore implements storage.Store with database/sql.
//
// Three drivers are supported and selected by name:
//
//	postgres  github.com/lib/pq
//	sqlite3   github.com/mattn/go-sqlite3 (default, cgo)
//	sqlite    modernc.org/sqlite (pure Go)
//
// All statements use $N placeholders, which every driver above accepts, and
// INSERT ... RETURNING id for generated keys.
//
// # Concurrency
//
// The pool is capped at a single connection and every method runs inside a
// Guard, so at most one database operation executes at a time. The guard is
// held for exactly one operation and released on every exit path; no store
// method calls another while holding it.
//
//	store, err := sqlstore.Open(ctx, cfg, sqlstore.WithObserver(metrics))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//	if err := store.Migrate(ctx); err != nil {
//		return err
//	}
package sqlstore
