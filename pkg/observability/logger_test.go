package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/platinummonkey/tasklist/pkg/auth"
	"github.com/platinummonkey/tasklist/pkg/contextkeys"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", FormatJSON, &buf)
	require.NoError(t, err)

	logger.WithField("user_id", 7).Debug("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(7), entry["user_id"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", FormatText, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger("verbose", FormatJSON, nil)
	assert.Error(t, err)

	_, err = NewLogger("info", "xml", nil)
	assert.Error(t, err)
}

func TestFromContext_PrefersRequestLogger(t *testing.T) {
	base, _ := test.NewNullLogger()
	scoped := base.WithField("request_id", "scoped")

	ctx := contextkeys.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, base))
}

func TestFromContext_Annotates(t *testing.T) {
	base, hook := test.NewNullLogger()

	ctx := contextkeys.WithRequestID(context.Background(), "req-9")
	ctx = contextkeys.WithIdentity(ctx, auth.Identity{UserID: 4})
	FromContext(ctx, base).Info("annotated")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "req-9", entry.Data["request_id"])
	assert.Equal(t, int64(4), entry.Data["user_id"])
}

func TestWithTraceContext(t *testing.T) {
	base, hook := test.NewNullLogger()

	// no span: logger returned unchanged
	assert.Equal(t, logrus.FieldLogger(base), WithTraceContext(context.Background(), base))

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	WithTraceContext(ctx, base).Info("traced")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry.Data["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry.Data["span_id"])
}
