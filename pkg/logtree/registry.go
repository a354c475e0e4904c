package logtree

import (
	"slices"
	"sync"
)

// Registry holds exactly one Logger per logical name.
// Loggers are created on first use and never removed.
type Registry struct {
	backend Backend
	prefix  string

	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithPrefix sets the backend name of the root logger.
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRegistry creates an empty registry over backend.
func NewRegistry(backend Backend, opts ...Option) *Registry {
	r := &Registry{
		backend: backend,
		prefix:  DefaultPrefix,
		loggers: make(map[string]*Logger),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prefix returns the backend name of the root logger.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Get returns the logger for name, creating it if needed, then applies
// attrs to it in order. Attributes given here overwrite those of earlier
// calls because every caller shares the same instance.
func (r *Registry) Get(name string, attrs ...Attributes) *Logger {
	l := r.lookup(name)
	for _, a := range attrs {
		l.SetAttributes(a)
	}
	return l
}

// Lookup returns the logger for name without applying attributes.
func (r *Registry) Lookup(name string) *Logger {
	return r.lookup(name)
}

// Root returns the logger with no name segments.
func (r *Registry) Root() *Logger {
	return r.lookup("")
}

// Names returns every logical name created so far, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

func (r *Registry) lookup(name string) *Logger {
	r.mu.RLock()
	l, ok := r.loggers[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l = newLogger(r, name)
	r.loggers[name] = l
	return l
}
