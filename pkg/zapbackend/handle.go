// pkg/zapbackend/handle.go
package zapbackend

import (
	"context"
	"math"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// noLevel marks a handle that inherits its level.
const noLevel = int32(math.MinInt32)

// Handle is the backend logger for one dot-separated name.
type Handle struct {
	backend *Backend
	name    string
	zap     *zap.Logger

	explicit atomic.Int32
	// cache packs generation<<8 | uint8(level) of the last resolution
	cache atomic.Uint64
}

func newHandle(b *Backend, name string) *Handle {
	z := b.zap
	if name != "" {
		z = z.Named(name)
	}
	h := &Handle{backend: b, name: name, zap: z}
	h.explicit.Store(noLevel)
	return h
}

// Name returns the dot-separated backend name.
func (h *Handle) Name() string {
	return h.name
}

// Level returns the effective level: the explicit level if set, otherwise
// the level of the nearest ancestor that has one.
func (h *Handle) Level() zapcore.Level {
	gen := h.backend.generation.Load()
	if c := h.cache.Load(); c>>8 == gen {
		return zapcore.Level(int8(uint8(c)))
	}
	lvl := h.backend.resolveLevel(h.name)
	h.cache.Store(gen<<8 | uint64(uint8(lvl)))
	return lvl
}

// ExplicitLevel returns the level set on this handle, if any.
func (h *Handle) ExplicitLevel() (zapcore.Level, bool) {
	v := h.explicit.Load()
	if v == noLevel {
		return zapcore.InfoLevel, false
	}
	return zapcore.Level(v), true
}

// SetLevel sets an explicit level on this handle.
// Descendants without their own level follow it immediately.
func (h *Handle) SetLevel(level zapcore.Level) {
	h.explicit.Store(int32(level))
	h.backend.invalidate()
}

// ClearLevel makes this handle inherit again.
// The root handle returns to the configured level instead.
func (h *Handle) ClearLevel() {
	if h.name == "" {
		h.explicit.Store(int32(h.backend.config.Level))
	} else {
		h.explicit.Store(noLevel)
	}
	h.backend.invalidate()
}

// Enabled reports whether entries at level would be written.
func (h *Handle) Enabled(level zapcore.Level) bool {
	return h.Level().Enabled(level)
}

// Log writes msg at level with the context fields of ctx.
// A non-nil cause is attached as the "error" field.
func (h *Handle) Log(ctx context.Context, level zapcore.Level, msg string, cause error) {
	if !h.Enabled(level) {
		return
	}
	ce := h.zap.Check(level, msg)
	if ce == nil {
		return
	}
	fields := ContextFields(ctx)
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	ce.Write(fields...)
}

// Sync flushes the shared pipeline.
func (h *Handle) Sync() error {
	return h.backend.Sync()
}

// parentName drops the last dot-separated segment; top-level names return "".
func parentName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}
