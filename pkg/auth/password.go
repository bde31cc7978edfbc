package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is deliberately low; every digest records its own cost so
// raising it later keeps existing digests valid
const DefaultHashCost = 8

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password
	Hash(password string) (string, error)

	// Verify reports whether password matches digest. A mismatch is
	// (false, nil); only a malformed digest is an error.
	Verify(password, digest string) (bool, error)
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher producing digests of the given cost
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Cost returns the cost used for new digests
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash generates a bcrypt digest of password. Passwords longer than
// MaxPasswordBytes fail with ErrPasswordTooLong.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", &HashError{Op: "hash", Err: err}
	}
	return string(digest), nil
}

// Verify compares password with a bcrypt digest of any cost
func (h *BcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, &HashError{Op: "verify", Err: err}
}
