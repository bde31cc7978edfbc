// Package auth provides password hashing, bearer token issuance and the
// register/login flows of the task-list service.
//
// # Overview
//
// PasswordHasher: one-way adaptive hashing (bcrypt)
//
//	hasher, _ := auth.NewBcryptHasher(auth.DefaultHashCost)
//	digest, err := hasher.Hash("pw1")
//	ok, err := hasher.Verify("pw1", digest) // mismatch is (false, nil)
//
// Digests embed their cost, so changing the configured cost only affects new
// digests.
//
// TokenCodec: HS256 JWTs carrying the user id and an absolute expiry
//
//	codec, _ := auth.NewTokenCodec(secret)
//	token, err := codec.Issue(userID, 24*time.Hour)
//	userID, err := codec.Validate(token) // errors wrap ErrInvalidToken
//
// The secret is read once at startup and never changes while the process
// runs. Rotating it invalidates every outstanding token.
//
// Service: registration and login
//
//	svc := auth.NewService(store, store, hasher, codec, auth.WithTokenTTL(ttl))
//	token, err := svc.Register(ctx, "alice", "pw1")
//	token, err = svc.Login(ctx, "alice", "pw1")
//
// # Errors
//
//	storage.ErrDuplicateUsername  Register with a taken username
//	storage.ErrNotFound           Login with an unknown username
//	ErrInvalidCredentials         Login with a wrong password
//	ErrPasswordTooLong            Register with a password over 72 bytes
//	*HashError                    internal hashing failure (malformed digest)
//	ErrInvalidToken               bad signature, undecodable payload, expired
//
// # Related Packages
//
//   - pkg/middleware: bearer extraction ahead of protected handlers
//   - pkg/storage: credential and task persistence
package auth
