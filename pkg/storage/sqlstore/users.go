package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/platinummonkey/tasklist/pkg/storage"
)

// CreateUser inserts a user. A duplicate username is detected from the
// constraint violation, never from a pre-check.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	var userID int64
	err := s.do("create_user", func() error {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO users (username, password_hash)
			VALUES ($1, $2)
			RETURNING id
		`, username, passwordHash).Scan(&userID)
		if isUniqueViolation(err) {
			return storage.ErrDuplicateUsername
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// FindByUsername looks up a user with its password digest
func (s *Store) FindByUsername(ctx context.Context, username string) (*storage.User, error) {
	user := &storage.User{}
	err := s.do("find_user", func() error {
		err := s.db.QueryRowContext(ctx, `
			SELECT id, username, password_hash
			FROM users WHERE username = $1
		`, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
