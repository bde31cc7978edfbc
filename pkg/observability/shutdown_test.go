package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownManager_ReverseOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sm := NewShutdownManager(logger, time.Second)

	var order []string
	for _, name := range []string{"store", "ops server", "api server"} {
		name := name
		sm.Register(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, sm.Shutdown())
	assert.Equal(t, []string{"api server", "ops server", "store"}, order)
}

func TestShutdownManager_ContinuesAfterFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sm := NewShutdownManager(logger, time.Second)

	ran := false
	sm.Register("first", func(context.Context) error {
		ran = true
		return nil
	})
	sm.Register("second", func(context.Context) error {
		return errors.New("stuck")
	})

	err := sm.Shutdown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second: stuck")
	assert.True(t, ran)

	var failed bool
	for _, e := range hook.AllEntries() {
		if e.Message == "Shutdown step failed" {
			failed = true
		}
	}
	assert.True(t, failed)
}

func TestShutdownManager_Once(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sm := NewShutdownManager(logger, 0)

	calls := 0
	sm.Register("count", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, sm.Shutdown())
	require.NoError(t, sm.Shutdown())
	assert.Equal(t, 1, calls)
}

func TestShutdownManager_Deadline(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sm := NewShutdownManager(logger, 10*time.Millisecond)

	sm.Register("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := sm.Shutdown()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
