package logtree

import (
	"context"

	"github.com/on-site/logtree/pkg/zapbackend"
)

// Handle is the backend logger for one backend name.
// Level resolution along the dot hierarchy is the backend's job.
type Handle interface {
	Name() string
	Level() Level
	SetLevel(Level)
	Enabled(Level) bool
	Log(ctx context.Context, level Level, msg string, cause error)
	Sync() error
}

// Backend hands out handles by backend name.
// It must return the same handle for the same name.
type Backend interface {
	Handle(name string) Handle
}

// levelClearer is implemented by handles that can drop an explicit level.
type levelClearer interface {
	ClearLevel()
}

type zapBackend struct {
	b *zapbackend.Backend
}

// FromZap adapts a zap backend to the Backend interface.
func FromZap(b *zapbackend.Backend) Backend {
	return zapBackend{b: b}
}

func (z zapBackend) Handle(name string) Handle {
	return z.b.Handle(name)
}
