package logtree

// Attribute keys understood by SetAttributes.
const (
	AttrLevel   = "level"
	AttrTracing = "tracing"
)

// Attributes assigns settable logger attributes by key.
type Attributes map[string]any

// SetAttributes applies each known key of attrs. Unknown keys and values
// of an unusable type are ignored; a nil map is a no-op.
//
// "level" accepts a Level, a level name, or nil to inherit again.
// "tracing" accepts a bool, a *bool, a Tracing, or nil to inherit again.
func (l *Logger) SetAttributes(attrs Attributes) {
	for key, value := range attrs {
		switch key {
		case AttrLevel:
			l.setLevelAttr(value)
		case AttrTracing:
			l.setTracingAttr(value)
		}
	}
}

func (l *Logger) setLevelAttr(value any) {
	switch v := value.(type) {
	case nil:
		l.ClearLevel()
	case Level:
		l.SetLevel(v)
	case string:
		if lvl, err := ParseLevel(v); err == nil {
			l.SetLevel(lvl)
		}
	}
}

func (l *Logger) setTracingAttr(value any) {
	switch v := value.(type) {
	case nil:
		l.SetTracing(TracingUnset)
	case bool:
		l.SetTracing(TracingOf(v))
	case *bool:
		if v == nil {
			l.SetTracing(TracingUnset)
			return
		}
		l.SetTracing(TracingOf(*v))
	case Tracing:
		l.SetTracing(v)
	}
}
