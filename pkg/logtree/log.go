package logtree

import "context"

// Debug logs v at debug level. See Log.
func (l *Logger) Debug(ctx context.Context, v any) {
	l.log(ctx, DebugLevel, v)
}

// Info logs v at info level. See Log.
func (l *Logger) Info(ctx context.Context, v any) {
	l.log(ctx, InfoLevel, v)
}

// Warn logs v at warn level. See Log.
func (l *Logger) Warn(ctx context.Context, v any) {
	l.log(ctx, WarnLevel, v)
}

// Error logs v at error level. See Log.
func (l *Logger) Error(ctx context.Context, v any) {
	l.log(ctx, ErrorLevel, v)
}

// Fatal logs v at fatal level. See Log.
// Whether the process exits is decided by the backend.
func (l *Logger) Fatal(ctx context.Context, v any) {
	l.log(ctx, FatalLevel, v)
}

// Log writes v at level if the backend has it enabled.
//
// v may be a plain value, an error, or a thunk of type func() any,
// func() string or func() error. Thunks run only for enabled levels.
// Errors are written with their recorded stack; a foreign root cause is
// passed to the backend separately.
//
// The backend receives a context whose diagnostic Map is a copy of the
// one in ctx with the caller location keys set. The Map in ctx itself is
// never modified.
func (l *Logger) Log(ctx context.Context, level Level, v any) {
	l.log(ctx, level, v)
}

func (l *Logger) log(ctx context.Context, level Level, v any) {
	if !l.handle.Enabled(level) {
		return
	}
	withCallerContext(ctx, l.Tracing(), func(ctx context.Context) {
		msg, cause := render(v)
		l.handle.Log(ctx, level, msg, cause)
	})
}

// LogError forwards msg and cause to the backend at error level as given.
func (l *Logger) LogError(ctx context.Context, msg string, cause error) {
	l.handle.Log(ctx, ErrorLevel, msg, cause)
}

// LogFatal forwards msg and cause to the backend at fatal level as given.
func (l *Logger) LogFatal(ctx context.Context, msg string, cause error) {
	l.handle.Log(ctx, FatalLevel, msg, cause)
}
