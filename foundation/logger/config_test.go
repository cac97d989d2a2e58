package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildConfigByEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		env              string
		wantLevel        zapcore.Level
		wantDisableStack bool
		wantCaller       bool
		wantCallerKey    string
		wantEncoding     string
	}{
		{
			name:             "development",
			env:              "development",
			wantLevel:        zap.DebugLevel,
			wantDisableStack: true,
			wantCallerKey:    zapcore.OmitKey,
			wantEncoding:     "console",
		},
		{
			name:          "debug",
			env:           " DEBUG ",
			wantLevel:     zap.DebugLevel,
			wantCaller:    true,
			wantCallerKey: "caller",
			wantEncoding:  "console",
		},
		{
			name:             "production",
			env:              "production",
			wantLevel:        zap.InfoLevel,
			wantDisableStack: true,
			wantCallerKey:    zapcore.OmitKey,
			wantEncoding:     "json",
		},
		{
			name:             "fallback",
			env:              "staging",
			wantLevel:        zap.InfoLevel,
			wantDisableStack: true,
			wantCallerKey:    zapcore.OmitKey,
			wantEncoding:     "console",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, withCaller := buildConfig(tc.env)

			require.Equal(t, tc.wantLevel, cfg.Level.Level())
			require.Equal(t, tc.wantDisableStack, cfg.DisableStacktrace)
			require.Equal(t, tc.wantCaller, withCaller)
			require.Equal(t, tc.wantCallerKey, cfg.EncoderConfig.CallerKey)
			require.Equal(t, tc.wantEncoding, cfg.Encoding)
			require.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
			require.Equal(t, "level", cfg.EncoderConfig.LevelKey)
			require.Equal(t, "msg", cfg.EncoderConfig.MessageKey)
			require.Equal(t, "logger", cfg.EncoderConfig.NameKey)
			require.Equal(t, []string{"stdout"}, cfg.OutputPaths)
		})
	}
}

func TestIsIgnorableSyncError(t *testing.T) {
	t.Parallel()

	require.False(t, isIgnorableSyncError(nil))
	require.True(t, isIgnorableSyncError(errors.New("sync /dev/stdout: invalid argument")))
	require.True(t, isIgnorableSyncError(errors.New("sync /dev/stdout: inappropriate ioctl for device")))
	require.False(t, isIgnorableSyncError(errors.New("disk write failed")))
}

func TestAppendContextFields(t *testing.T) {
	t.Parallel()

	require.Equal(t, []any{"k", "v"}, appendContextFields(nil, "k", "v"))
	require.Equal(t, []any{"k", "v"}, appendContextFields(context.Background(), "k", "v"))

	ctx := ContextWithRequestID(context.Background(), "req-1")
	require.Equal(t, []any{"k", "v", "request_id", "req-1"}, appendContextFields(ctx, "k", "v"))

	//nolint:staticcheck // nil context is part of the contract
	ctx = ContextWithRequestID(nil, "req-2")
	require.Equal(t, "req-2", RequestIDFromContext(ctx))
}
