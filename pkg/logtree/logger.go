package logtree

import "sync/atomic"

// Tracing is the explicit tracing setting of a logger.
type Tracing int32

const (
	// TracingUnset inherits from the parent logger.
	TracingUnset Tracing = iota
	// TracingOn records the caller location of each entry.
	TracingOn
	// TracingOff writes empty caller location keys.
	TracingOff
)

// TracingOf converts a boolean to an explicit setting.
func TracingOf(on bool) Tracing {
	if on {
		return TracingOn
	}
	return TracingOff
}

func (t Tracing) String() string {
	switch t {
	case TracingOn:
		return "on"
	case TracingOff:
		return "off"
	default:
		return "unset"
	}
}

// Logger is the facade for one logical name.
// It is safe for concurrent use.
type Logger struct {
	registry    *Registry
	name        string
	backendName string
	handle      Handle

	tracing atomic.Int32
}

func newLogger(r *Registry, name string) *Logger {
	backendName := Translate(r.prefix, name)
	return &Logger{
		registry:    r,
		name:        name,
		backendName: backendName,
		handle:      r.backend.Handle(backendName),
	}
}

// Name returns the logical name.
func (l *Logger) Name() string {
	return l.name
}

// BackendName returns the dot-separated name used by the backend.
func (l *Logger) BackendName() string {
	return l.backendName
}

// IsRoot reports whether l is the registry root.
func (l *Logger) IsRoot() bool {
	return l.name == ""
}

// Parent returns the logger one segment up, creating it if needed.
// The root returns nil.
func (l *Logger) Parent() *Logger {
	name, ok := Parent(l.name)
	if !ok {
		return nil
	}
	return l.registry.lookup(name)
}

// Level returns the effective level as resolved by the backend.
func (l *Logger) Level() Level {
	return l.handle.Level()
}

// SetLevel sets an explicit level on the backend handle.
func (l *Logger) SetLevel(level Level) {
	l.handle.SetLevel(level)
}

// ClearLevel makes the logger inherit its level again, if the backend
// supports it.
func (l *Logger) ClearLevel() {
	if c, ok := l.handle.(levelClearer); ok {
		c.ClearLevel()
	}
}

// ExplicitTracing returns the setting stored on this logger.
func (l *Logger) ExplicitTracing() Tracing {
	return Tracing(l.tracing.Load())
}

// SetTracing stores an explicit setting. TracingUnset inherits again.
// Descendants without their own setting follow l; ancestors are unaffected.
func (l *Logger) SetTracing(t Tracing) {
	l.tracing.Store(int32(t))
}

// Tracing resolves the effective tracing flag: the nearest explicit
// setting walking up the name hierarchy, or false at the root.
// Missing ancestors are created along the way.
func (l *Logger) Tracing() bool {
	for cur := l; cur != nil; cur = cur.Parent() {
		switch cur.ExplicitTracing() {
		case TracingOn:
			return true
		case TracingOff:
			return false
		}
	}
	return false
}

// Enabled reports whether the backend would write an entry at level.
func (l *Logger) Enabled(level Level) bool {
	return l.handle.Enabled(level)
}

// DebugEnabled reports whether debug entries are written.
func (l *Logger) DebugEnabled() bool { return l.Enabled(DebugLevel) }

// InfoEnabled reports whether info entries are written.
func (l *Logger) InfoEnabled() bool { return l.Enabled(InfoLevel) }

// WarnEnabled reports whether warn entries are written.
func (l *Logger) WarnEnabled() bool { return l.Enabled(WarnLevel) }

// ErrorEnabled reports whether error entries are written.
func (l *Logger) ErrorEnabled() bool { return l.Enabled(ErrorLevel) }

// FatalEnabled reports whether fatal entries are written.
func (l *Logger) FatalEnabled() bool { return l.Enabled(FatalLevel) }

// Flush flushes buffered backend output.
func (l *Logger) Flush() error {
	return l.handle.Sync()
}
