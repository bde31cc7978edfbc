package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/platinummonkey/tasklist/pkg/storage"
	"github.com/platinummonkey/tasklist/pkg/storage/sqlstore"
)

type recordingAttempts struct {
	mu       sync.Mutex
	attempts []string
}

func (r *recordingAttempts) ObserveAuthAttempt(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, operation+":"+outcome)
}

// failingTasks rejects every task write
type failingTasks struct {
	storage.TaskStore
}

func (failingTasks) CreateTask(context.Context, int64, string) (*storage.Task, error) {
	return nil, errors.New("disk full")
}

func setupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	store, err := sqlstore.Open(context.Background(), storage.Config{
		Driver:         storage.DriverSQLite3,
		DSN:            ":memory:",
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func setupTestService(t *testing.T, opts ...ServiceOption) (*Service, *sqlstore.Store) {
	t.Helper()

	store := setupTestStore(t)
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	return NewService(store, store, hasher, newTestCodec(t), opts...), store
}

func TestService_Register(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	identity, err := svc.Authenticate(token)
	require.NoError(t, err)

	user, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.NotEqual(t, "pw1", user.PasswordHash)

	tasks, err := store.ListTasks(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, SeedTaskDescription, tasks[0].Description)
	assert.False(t, tasks[0].Completed)
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "pw2")
	require.ErrorIs(t, err, storage.ErrDuplicateUsername)

	user, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	tasks, err := store.ListTasks(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "duplicate registration must not seed again")
}

func TestService_RegisterPasswordTooLong(t *testing.T) {
	attempts := &recordingAttempts{}
	svc, store := setupTestService(t, WithAttemptObserver(attempts))
	ctx := context.Background()

	_, err := svc.Register(ctx, "long", strings.Repeat("a", MaxPasswordBytes+1))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = store.FindByUsername(ctx, "long")
	assert.ErrorIs(t, err, storage.ErrNotFound, "no user is created")
	assert.Equal(t, []string{"register:invalid_password"}, attempts.attempts)
}

func TestService_RegisterSeedFailureIsLogged(t *testing.T) {
	store := setupTestStore(t)
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	svc := NewService(store, failingTasks{store}, hasher, newTestCodec(t), WithLogger(logger))

	token, err := svc.Register(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
			assert.Equal(t, "Failed to seed default task", entry.Message)
		}
	}
	assert.True(t, warned)
}

func TestService_Login(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	want, err := svc.Authenticate(registered)
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	got, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_LoginFailures(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_LoginMalformedDigest(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, "broken", "not-a-digest")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "broken", "pw")
	var hashErr *HashError
	assert.True(t, errors.As(err, &hashErr))
}

func TestService_AttemptObserver(t *testing.T) {
	attempts := &recordingAttempts{}
	svc, store := setupTestService(t, WithAttemptObserver(attempts))
	ctx := context.Background()

	_, _ = svc.Register(ctx, "alice", "pw1")
	_, _ = svc.Register(ctx, "alice", "pw1")
	_, _ = svc.Login(ctx, "alice", "pw1")
	_, _ = svc.Login(ctx, "alice", "nope")
	_, _ = svc.Login(ctx, "carol", "pw1")

	_, err := store.CreateUser(ctx, "broken", "not-a-digest")
	require.NoError(t, err)
	_, _ = svc.Login(ctx, "broken", "pw")

	assert.Equal(t, []string{
		"register:success",
		"register:duplicate",
		"login:success",
		"login:invalid_credentials",
		"login:unknown_user",
		"login:error",
	}, attempts.attempts)
}

func TestService_TokenTTL(t *testing.T) {
	svc, _ := setupTestService(t, WithTokenTTL(-time.Minute))

	token, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_CrossUserIsolation(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	ta, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	tb, err := svc.Register(ctx, "bob", "pw2")
	require.NoError(t, err)

	alice, err := svc.Authenticate(ta)
	require.NoError(t, err)
	bob, err := svc.Authenticate(tb)
	require.NoError(t, err)
	require.NotEqual(t, alice.UserID, bob.UserID)

	aliceTasks, err := store.ListTasks(ctx, alice.UserID)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 1)

	err = store.DeleteTask(ctx, bob.UserID, aliceTasks[0].ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	aliceTasks, err = store.ListTasks(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Len(t, aliceTasks, 1)
}
