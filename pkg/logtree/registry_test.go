package logtree

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRegistry_GetIdentity(t *testing.T) {
	r, b := newFakeRegistry()

	a := r.Get("A::B")
	assert.Same(t, a, r.Get("A::B"))
	assert.Same(t, a, r.Lookup("A::B"))
	assert.NotSame(t, a, r.Get("A"))

	assert.Equal(t, "A::B", a.Name())
	assert.Equal(t, "logtree.A.B", a.BackendName())
	assert.Equal(t, 2, b.created)
}

func TestRegistry_Root(t *testing.T) {
	r, _ := newFakeRegistry()

	root := r.Root()
	assert.Same(t, root, r.Root())
	assert.Same(t, root, r.Get(""))
	assert.True(t, root.IsRoot())
	assert.Equal(t, "logtree", root.BackendName())
	assert.Nil(t, root.Parent())
}

func TestRegistry_WithPrefix(t *testing.T) {
	r := NewRegistry(newFakeBackend(), WithPrefix("app"))

	assert.Equal(t, "app", r.Prefix())
	assert.Equal(t, "app", r.Root().BackendName())
	assert.Equal(t, "app.X.Y", r.Get("X::Y").BackendName())
}

func TestRegistry_WithEmptyPrefix(t *testing.T) {
	r := NewRegistry(newFakeBackend(), WithPrefix(""))
	assert.Equal(t, DefaultPrefix, r.Prefix())
}

func TestRegistry_ConcurrentGet(t *testing.T) {
	const (
		workers = 10
		names   = 1000
	)
	r, b := newFakeRegistry()

	first := make([][]*Logger, workers)
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		first[k] = make([]*Logger, names)
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			for n := 0; n < names; n++ {
				first[k][n] = r.Get(fmt.Sprintf("Svc::%d", n))
			}
		}(k)
	}
	wg.Wait()

	for k := 0; k < workers; k++ {
		for n := 0; n < names; n++ {
			require.Same(t, first[k][n], r.Get(fmt.Sprintf("Svc::%d", n)))
			require.Same(t, first[0][n], first[k][n])
		}
	}
	assert.Equal(t, names, b.created)
}

func TestRegistry_OptionsApplyToExisting(t *testing.T) {
	r, _ := newFakeRegistry()

	l := r.Get("A", Attributes{AttrTracing: false})
	assert.Equal(t, TracingOff, l.ExplicitTracing())

	again := r.Get("A", Attributes{AttrTracing: true, AttrLevel: "warn"})
	assert.Same(t, l, again)
	assert.Equal(t, TracingOn, l.ExplicitTracing())
	assert.Equal(t, WarnLevel, l.Level())

	// no options leaves attributes alone
	r.Get("A")
	assert.Equal(t, TracingOn, l.ExplicitTracing())
}

func TestRegistry_Names(t *testing.T) {
	r, _ := newFakeRegistry()
	r.Get("B")
	r.Get("A::C")
	r.Root()

	assert.Equal(t, []string{"", "A::C", "B"}, r.Names())
}

func TestRegistry_Apply(t *testing.T) {
	r, _ := newFakeRegistry()
	on := true

	r.Apply(map[string]LoggerConfig{
		"A":    {Level: "error"},
		"A::B": {Tracing: &on},
		"C":    {},
	})

	assert.Equal(t, ErrorLevel, r.Get("A").Level())
	assert.Equal(t, TracingOn, r.Get("A::B").ExplicitTracing())
	assert.Equal(t, TracingUnset, r.Get("C").ExplicitTracing())
	assert.Equal(t, DebugLevel, r.Get("C").Level())
}
