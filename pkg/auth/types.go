package auth

import (
	"errors"
	"fmt"
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

var (
	// ErrInvalidToken is returned when a token's signature, encoding or
	// expiry does not check out
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated is returned when a request carries no usable bearer
	// credential at all
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials is returned by Login when the password does not
	// match the stored digest
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooLong is returned when a password cannot be hashed
	// because of its length. It is caller input, not a HashError.
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
)

// Identity is the authenticated caller of a protected operation
type Identity struct {
	UserID int64
}

// HashError reports an internal password hashing failure. A password that
// simply does not match is not a HashError.
type HashError struct {
	Op  string // "hash" or "verify"
	Err error
}

func (e *HashError) Error() string {
	return "password " + e.Op + " failed: " + e.Err.Error()
}

func (e *HashError) Unwrap() error {
	return e.Err
}
