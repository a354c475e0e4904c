package logtree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/on-site/logtree/pkg/zapbackend"
)

// ErrAlreadyInitialized is returned by Setup once the default registry exists.
var ErrAlreadyInitialized = errors.New("default registry already initialized")

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
	defaultBackend  *zapbackend.Backend
)

// Default returns the process-wide registry. Without a prior Setup it is
// created over a zap backend with the default configuration.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		cfg := NewDefaultConfig()
		b, err := zapbackend.New(&cfg.Backend, nil)
		if err != nil {
			panic(fmt.Sprintf("logtree: default backend: %v", err))
		}
		defaultBackend = b
		defaultRegistry = NewRegistry(FromZap(b), WithPrefix(cfg.Prefix))
	}
	return defaultRegistry
}

// Setup builds the process-wide registry from cfg. It fails with
// ErrAlreadyInitialized after Setup or Default has run.
func Setup(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry != nil {
		return ErrAlreadyInitialized
	}
	b, err := zapbackend.New(&cfg.Backend, nil)
	if err != nil {
		return fmt.Errorf("failed to create backend: %w", err)
	}
	r := NewRegistry(FromZap(b), WithPrefix(cfg.Prefix))
	r.Apply(cfg.Loggers)
	defaultBackend = b
	defaultRegistry = r
	return nil
}

// Shutdown flushes and closes the default backend, if one was created.
func Shutdown() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultBackend == nil {
		return nil
	}
	return defaultBackend.Close()
}

// Get returns the named logger of the default registry. See Registry.Get.
func Get(name string, attrs ...Attributes) *Logger {
	return Default().Get(name, attrs...)
}

// Lookup returns the named logger of the default registry.
func Lookup(name string) *Logger {
	return Default().Lookup(name)
}

// Root returns the root logger of the default registry.
func Root() *Logger {
	return Default().Root()
}
