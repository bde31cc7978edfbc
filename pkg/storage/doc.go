// Package storage defines the persistence contracts for the task-list service.
//
// # Overview
//
// Two tables back the service: users (username → bcrypt digest) and todos
// (tasks keyed by owning user). The API layer depends only on the interfaces
// declared here; pkg/storage/sqlstore provides the database/sql implementation.
//
//   - UserStore: CreateUser, FindByUsername
//   - TaskStore: ListTasks, CreateTask, UpdateTaskCompleted, DeleteTask
//   - HealthChecker: HealthCheck
//
// # Ownership
//
// Every TaskStore method takes the owner id. Reads and writes match on both
// the task id and the owner, so a task belonging to another user is
// indistinguishable from a missing one and surfaces as ErrNotFound.
//
// # Errors
//
//	ErrNotFound           unknown username, or no task with that id under that owner
//	ErrDuplicateUsername  username uniqueness constraint violated
//
// Any other error is an internal backend failure.
//
// # Configuration
//
//	cfg := storage.DefaultConfig()   // sqlite3, db.sqlite
//	cfg.Driver = storage.DriverPostgres
//	cfg.DSN = "postgres://localhost/tasklist?sslmode=disable"
package storage
