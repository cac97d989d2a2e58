package logger

import "context"

// Interface is the logging surface consumed by the HTTP transport and the
// binaries. *Logger implements it; tests may substitute Nop().
type Interface interface {
	Infow(string, ...any)
	Warnw(string, ...any)
	Errorw(string, ...any)
	Debugw(string, ...any)

	InfowCtx(context.Context, string, ...any)
	WarnwCtx(context.Context, string, ...any)
	ErrorwCtx(context.Context, string, ...any)

	With(...any) Interface
	SafeSync()
}
