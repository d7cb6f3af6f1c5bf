package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = New(ProductionConfig())
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNewForEnvironment(t *testing.T) {
	logger, err := NewForEnvironment("production")
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = NewForEnvironment("development")
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestContext_Logger(t *testing.T) {
	ctx := context.Background()

	// Missing logger falls back to a no-op
	assert.NotNil(t, FromContext(ctx))

	logger := zap.NewNop()
	ctx = WithContext(ctx, logger)
	assert.Equal(t, logger, FromContext(ctx))
}

func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx, enriched := WithRequestID(ctx, zap.NewNop(), "req-123")
	assert.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestContext_UserID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetUserID(ctx))

	ctx, _ = WithUserID(ctx, zap.NewNop(), "user-7")
	assert.Equal(t, "user-7", GetUserID(ctx))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, MapGormLogLevel("error"), MapGormLogLevel("error"))
	assert.NotEqual(t, MapGormLogLevel("silent"), MapGormLogLevel("info"))
	assert.Equal(t, MapGormLogLevel("warn"), MapGormLogLevel("unknown"))
}
