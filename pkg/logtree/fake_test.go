package logtree

import (
	"context"
	"sync"

	"github.com/on-site/logtree/pkg/mdc"
)

type logCall struct {
	level   Level
	msg     string
	cause   error
	context map[string]string
}

// fakeHandle records calls and the diagnostic context seen by each.
type fakeHandle struct {
	name string

	mu    sync.Mutex
	level Level
	calls []logCall
	onLog func(ctx context.Context)
}

func (h *fakeHandle) Name() string { return h.name }

func (h *fakeHandle) Level() Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.level
}

func (h *fakeHandle) SetLevel(level Level) {
	h.mu.Lock()
	h.level = level
	h.mu.Unlock()
}

func (h *fakeHandle) Enabled(level Level) bool {
	return h.Level().Enabled(level)
}

func (h *fakeHandle) Log(ctx context.Context, level Level, msg string, cause error) {
	var snap map[string]string
	if m := mdc.FromContext(ctx); m != nil {
		snap = m.Snapshot()
	}
	h.mu.Lock()
	h.calls = append(h.calls, logCall{level: level, msg: msg, cause: cause, context: snap})
	onLog := h.onLog
	h.mu.Unlock()
	if onLog != nil {
		onLog(ctx)
	}
}

func (h *fakeHandle) Sync() error { return nil }

func (h *fakeHandle) Calls() []logCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]logCall(nil), h.calls...)
}

type fakeBackend struct {
	mu      sync.Mutex
	handles map[string]*fakeHandle
	created int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{handles: make(map[string]*fakeHandle)}
}

func (b *fakeBackend) Handle(name string) Handle {
	return b.handle(name)
}

func (b *fakeBackend) handle(name string) *fakeHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.handles[name]
	if !ok {
		h = &fakeHandle{name: name, level: DebugLevel}
		b.handles[name] = h
		b.created++
	}
	return h
}

// newFakeRegistry returns a registry whose handles accept every level.
func newFakeRegistry() (*Registry, *fakeBackend) {
	b := newFakeBackend()
	return NewRegistry(b), b
}
