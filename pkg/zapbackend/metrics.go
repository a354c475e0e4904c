// pkg/zapbackend/metrics.go
package zapbackend

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap/zapcore"
)

// OTELEntriesCounter is the OpenTelemetry counter name for written entries.
const OTELEntriesCounter = "logtree.entries"

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for written log entries.
type Metrics struct {
	EntriesTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the backend metrics.
//
// Registration happens once per process so that constructing several
// backends never panics with a duplicate collector.
//
// Metrics:
//   - logtree_entries_total{level} - Count of entries handed to the outputs
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			EntriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "logtree_entries_total",
					Help: "Total number of log entries written",
				},
				[]string{"level"},
			),
		}
	})
	return globalMetrics
}

// observe is a zap hook counting every written entry.
func (m *Metrics) observe(e zapcore.Entry) error {
	m.EntriesTotal.WithLabelValues(e.Level.String()).Inc()
	return nil
}

// otelCounter counts entries on an OpenTelemetry meter.
type otelCounter struct {
	counter metric.Int64Counter
}

func newOTELCounter(m metric.Meter) (*otelCounter, error) {
	c, err := m.Int64Counter(OTELEntriesCounter,
		metric.WithDescription("Total number of log entries written"),
	)
	if err != nil {
		return nil, err
	}
	return &otelCounter{counter: c}, nil
}

func (c *otelCounter) observe(e zapcore.Entry) error {
	c.counter.Add(context.Background(), 1, metric.WithAttributes(attribute.String("level", e.Level.String())))
	return nil
}
