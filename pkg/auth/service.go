package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/storage"
)

// SeedTaskDescription is the task every new account starts with
const SeedTaskDescription = "Add a Task!"

// Outcomes reported to an AttemptObserver
const (
	OutcomeSuccess            = "success"
	OutcomeDuplicate          = "duplicate"
	OutcomeUnknownUser        = "unknown_user"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInvalidPassword    = "invalid_password"
	OutcomeError              = "error"
)

// AttemptObserver receives the outcome of every register and login call
type AttemptObserver interface {
	ObserveAuthAttempt(operation, outcome string)
}

// Service implements registration and login on top of the credential store
type Service struct {
	users    storage.UserStore
	tasks    storage.TaskStore
	hasher   PasswordHasher
	tokens   *TokenCodec
	ttl      time.Duration
	logger   logrus.FieldLogger
	observer AttemptObserver
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithLogger sets the service logger
func WithLogger(logger logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAttemptObserver reports register/login outcomes to o
func WithAttemptObserver(o AttemptObserver) ServiceOption {
	return func(s *Service) {
		s.observer = o
	}
}

// NewService creates a new account service
func NewService(users storage.UserStore, tasks storage.TaskStore, hasher PasswordHasher, tokens *TokenCodec, opts ...ServiceOption) *Service {
	s := &Service{
		users:  users,
		tasks:  tasks,
		hasher: hasher,
		tokens: tokens,
		ttl:    DefaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		s.logger = discard
	}
	return s
}

// Register creates an account, seeds its first task and returns a token.
// User creation and seeding are separate statements; a failed seed is logged
// and does not fail the registration.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	token, err := s.register(ctx, username, password)
	s.observe("register", err)
	return token, err
}

func (s *Service) register(ctx context.Context, username, password string) (string, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	userID, err := s.users.CreateUser(ctx, username, digest)
	if err != nil {
		return "", fmt.Errorf("register %q: %w", username, err)
	}

	logger := s.logger.WithField("user_id", userID)
	if _, err := s.tasks.CreateTask(ctx, userID, SeedTaskDescription); err != nil {
		logger.WithError(err).Warn("Failed to seed default task")
	}

	token, err := s.tokens.Issue(userID, s.ttl)
	if err != nil {
		return "", err
	}

	logger.Info("User registered")
	return token, nil
}

// Login verifies credentials and returns a token. An unknown username
// returns storage.ErrNotFound, a wrong password ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	token, err := s.login(ctx, username, password)
	s.observe("login", err)
	return token, err
}

func (s *Service) login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("login %q: %w", username, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, s.ttl)
}

// Authenticate validates a bearer token and returns the caller identity
func (s *Service) Authenticate(token string) (Identity, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID}, nil
}

func (s *Service) observe(operation string, err error) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveAuthAttempt(operation, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, storage.ErrDuplicateUsername):
		return OutcomeDuplicate
	case errors.Is(err, storage.ErrNotFound):
		return OutcomeUnknownUser
	case errors.Is(err, ErrInvalidCredentials):
		return OutcomeInvalidCredentials
	case errors.Is(err, ErrPasswordTooLong):
		return OutcomeInvalidPassword
	default:
		return OutcomeError
	}
}
