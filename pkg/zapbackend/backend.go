// pkg/zapbackend/backend.go
package zapbackend

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"syscall"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Backend owns a zap pipeline and one Handle per dot-separated name.
// Handles without an explicit level inherit from their nearest ancestor.
type Backend struct {
	config *Config
	zap    *zap.Logger
	closer io.Closer

	mu      sync.RWMutex
	handles map[string]*Handle
	root    *Handle

	// generation changes whenever any explicit level changes
	generation atomic.Uint64
}

// Option customizes New.
type Option func(*options)

type options struct {
	sink  zapcore.WriteSyncer
	meter metric.Meter
}

// WithWriter replaces stdout with ws for the console/json output.
func WithWriter(ws zapcore.WriteSyncer) Option {
	return func(o *options) {
		o.sink = ws
	}
}

// WithMeter also counts written entries on an OpenTelemetry meter.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		o.meter = m
	}
}

// continueHook lets execution continue after a fatal entry is written.
type continueHook struct{}

func (continueHook) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

// New creates a backend from config.
// otelProvider can be nil to disable OTEL output.
func New(cfg *Config, otelProvider log.LoggerProvider, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	core, closer, err := newCore(cfg, otelProvider, o.sink)
	if err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	zopts := zapOptions(cfg)
	if o.meter != nil {
		counter, err := newOTELCounter(o.meter)
		if err != nil {
			if closer != nil {
				_ = closer.Close()
			}
			return nil, fmt.Errorf("failed to create entry counter: %w", err)
		}
		zopts = append(zopts, zap.Hooks(counter.observe))
	}

	return newBackend(cfg, zap.New(core, zopts...), closer), nil
}

// zapOptions builds logger options from config.
func zapOptions(cfg *Config) []zap.Option {
	opts := []zap.Option{
		zap.Hooks(NewMetrics().observe),
	}
	if cfg.FatalExit {
		opts = append(opts, zap.WithFatalHook(zapcore.WriteThenFatal))
	} else {
		opts = append(opts, zap.WithFatalHook(continueHook{}))
	}
	if cfg.Stacktrace.Enabled {
		opts = append(opts, zap.AddStacktrace(cfg.Stacktrace.Level))
	}
	return opts
}

func newBackend(cfg *Config, zapLogger *zap.Logger, closer io.Closer) *Backend {
	// Add constant fields from config
	if len(cfg.Fields) > 0 {
		fields := make([]zap.Field, 0, len(cfg.Fields))
		for k, v := range cfg.Fields {
			fields = append(fields, zap.String(k, v))
		}
		zapLogger = zapLogger.With(fields...)
	}

	b := &Backend{
		config:  cfg,
		zap:     zapLogger,
		closer:  closer,
		handles: make(map[string]*Handle),
	}
	b.generation.Store(1)

	b.root = newHandle(b, "")
	b.root.explicit.Store(int32(cfg.Level))
	b.handles[""] = b.root
	return b
}

// Handle returns the handle for name, creating it on first use.
// Every call for the same name returns the same *Handle.
func (b *Backend) Handle(name string) *Handle {
	b.mu.RLock()
	h, ok := b.handles[name]
	b.mu.RUnlock()
	if ok {
		return h
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if h, ok := b.handles[name]; ok {
		return h
	}
	h = newHandle(b, name)
	b.handles[name] = h
	return h
}

// Root returns the handle every name ultimately inherits from.
func (b *Backend) Root() *Handle {
	return b.root
}

// resolveLevel walks name and its dot-ancestors until one has an explicit level.
func (b *Backend) resolveLevel(name string) zapcore.Level {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for n := name; n != ""; n = parentName(n) {
		if h, ok := b.handles[n]; ok {
			if lvl, ok := h.ExplicitLevel(); ok {
				return lvl
			}
		}
	}
	lvl, _ := b.root.ExplicitLevel()
	return lvl
}

// invalidate forces every handle to re-resolve its level.
func (b *Backend) invalidate() {
	b.generation.Add(1)
}

// Sync flushes any buffered log entries.
func (b *Backend) Sync() error {
	err := b.zap.Sync()
	// Ignore sync errors on stdout/stderr (common on Linux)
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

// Close flushes and releases the rotated log file, if any.
func (b *Backend) Close() error {
	err := b.Sync()
	if b.closer != nil {
		if cerr := b.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// isStdoutSyncError checks if error is harmless stdout/stderr sync error.
// On Linux, syncing stdout/stderr returns EINVAL or ENOTTY which are safe to ignore.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
