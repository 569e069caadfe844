package logger

import (
	"context"
	"testing"

	"membersync/internal/shared/contextkeys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	log := NewLogger()
	require.NotNil(t, log)

	// Chaining must always yield a usable logger.
	assert.NotNil(t, log.WithComponent("sync_usecase"))
	assert.NotNil(t, log.WithFields(map[string]interface{}{"domain": "versions"}))
	assert.NotNil(t, log.WithContext(context.Background()))
}

func TestWithContext_ExtractsKnownKeys(t *testing.T) {
	log := NewLogger().(*LogrusLogger)

	ctx := context.WithValue(context.Background(), contextkeys.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, contextkeys.DomainKey, "versions")

	enriched := log.WithContext(ctx).(*LogrusLogger)

	assert.Equal(t, "req-1", enriched.entry.Data["request_id"])
	assert.Equal(t, "versions", enriched.entry.Data["domain"])
}

func TestWithContext_IgnoresMissingAndEmptyValues(t *testing.T) {
	log := NewLogger().(*LogrusLogger)

	ctx := context.WithValue(context.Background(), contextkeys.OperationKey, "")
	enriched := log.WithContext(ctx).(*LogrusLogger)

	_, hasOperation := enriched.entry.Data["operation"]
	assert.False(t, hasOperation)
	_, hasRequestID := enriched.entry.Data["request_id"]
	assert.False(t, hasRequestID)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, levelFromEnv())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, logrus.InfoLevel, levelFromEnv())
}

func TestFormatterFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_FORMAT", "")
	_, ok := formatterFromEnv().(*logrus.JSONFormatter)
	assert.True(t, ok)

	t.Setenv("ENVIRONMENT", "")
	_, ok = formatterFromEnv().(*logrus.TextFormatter)
	assert.True(t, ok)
}
