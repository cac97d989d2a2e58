package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vortex-fintech/go-iban/foundation/piiutil"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

type Logger struct {
	*zap.SugaredLogger
}

// Must is New that exits the process when zap cannot be configured.
func Must(serviceName, env string) *Logger {
	l, err := New(serviceName, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return l
}

func New(serviceName, env string) (*Logger, error) {
	cfg, withCaller := buildConfig(env)

	z, err := cfg.Build(
		zap.WithCaller(withCaller),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init zap logger: %w", err)
	}

	return FromZap(z.Named(serviceName)), nil
}

// FromZap wraps an existing zap logger, e.g. one built on an observer core.
func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{SugaredLogger: z.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger { return FromZap(zap.NewNop()) }

// profile describes how one IBAN_ENV value configures zap.
type profile struct {
	production bool
	level      zapcore.Level
	caller     bool
	stacktrace bool
}

var profiles = map[string]profile{
	"development": {level: zap.DebugLevel},
	"debug":       {level: zap.DebugLevel, caller: true, stacktrace: true},
	"production":  {production: true, level: zap.InfoLevel},
}

var fallbackProfile = profile{level: zap.InfoLevel}

func buildConfig(env string) (zap.Config, bool) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(env))]
	if !ok {
		p = fallbackProfile
	}

	cfg := zap.NewDevelopmentConfig()
	if p.production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(p.level)
	cfg.DisableStacktrace = !p.stacktrace

	enc := &cfg.EncoderConfig
	enc.TimeKey = "timestamp"
	enc.LevelKey = "level"
	enc.MessageKey = "msg"
	enc.NameKey = "logger"
	enc.CallerKey = zapcore.OmitKey
	if p.caller {
		enc.CallerKey = "caller"
	}
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}

	return cfg, p.caller
}

func (l *Logger) With(args ...any) Interface {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

func (l *Logger) SafeSync() {
	if l == nil {
		return
	}
	if err := l.Desugar().Sync(); err != nil && !isIgnorableSyncError(err) {
		l.Errorf("log sync error: %v", err)
	}
}

// stdout/stderr cannot be fsynced on most platforms.
func isIgnorableSyncError(err error) bool {
	if err == nil {
		return false
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "invalid argument") ||
		strings.Contains(s, "inappropriate ioctl for device")
}

func (l *Logger) InfowCtx(ctx context.Context, msg string, kv ...any) {
	l.SugaredLogger.Infow(msg, appendContextFields(ctx, kv...)...)
}

func (l *Logger) WarnwCtx(ctx context.Context, msg string, kv ...any) {
	l.SugaredLogger.Warnw(msg, appendContextFields(ctx, kv...)...)
}

func (l *Logger) ErrorwCtx(ctx context.Context, msg string, kv ...any) {
	l.SugaredLogger.Errorw(msg, appendContextFields(ctx, kv...)...)
}

func appendContextFields(ctx context.Context, kv ...any) []any {
	if id := RequestIDFromContext(ctx); id != "" {
		kv = append(kv, "request_id", id)
	}
	return kv
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

// IBAN returns a structured field carrying a masked IBAN. Raw account
// numbers must never reach the log sink.
func IBAN(raw string) zap.Field {
	return zap.String("iban", piiutil.MaskIBAN(raw))
}
