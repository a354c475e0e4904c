package telemetry

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/on-site/logtree/internal/config"
)

// OTLP transport names accepted in Config.Protocol.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"

	// protocolHTTPProtobuf is the OTEL_EXPORTER_OTLP_PROTOCOL spelling of ProtocolHTTP.
	protocolHTTPProtobuf = "http/protobuf"
)

// Config selects where spans and metrics are exported.
type Config struct {
	Enabled        bool           `koanf:"enabled"`
	Endpoint       string         `koanf:"endpoint"`
	Protocol       string         `koanf:"protocol"`
	ServiceName    string         `koanf:"service_name"`
	ServiceVersion string         `koanf:"service_version"`
	Insecure       bool           `koanf:"insecure"` // plaintext, local endpoints only
	Sampling       SamplingConfig `koanf:"sampling"`
	Metrics        MetricsConfig  `koanf:"metrics"`
	Shutdown       ShutdownConfig `koanf:"shutdown"`
}

// SamplingConfig sets the fraction of root spans kept.
type SamplingConfig struct {
	Rate float64 `koanf:"rate"`
}

// MetricsConfig controls the periodic metric reader.
type MetricsConfig struct {
	Enabled        bool            `koanf:"enabled"`
	ExportInterval config.Duration `koanf:"export_interval"`
}

// ShutdownConfig bounds Telemetry.Shutdown.
type ShutdownConfig struct {
	Timeout config.Duration `koanf:"timeout"`
}

// NewDefaultConfig returns a config with export off. Spans started from
// the resulting tracer provider still carry IDs that log entries pick up.
func NewDefaultConfig() *Config {
	return &Config{
		Endpoint:       "localhost:4317",
		Protocol:       ProtocolGRPC,
		ServiceName:    "logtree",
		ServiceVersion: "0.1.0",
		Insecure:       true,
		Sampling:       SamplingConfig{Rate: 1.0},
		Metrics: MetricsConfig{
			Enabled:        true,
			ExportInterval: config.Duration(15 * time.Second),
		},
		Shutdown: ShutdownConfig{Timeout: config.Duration(5 * time.Second)},
	}
}

// Validate reports the first problem with an enabled config.
// A disabled config is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	switch {
	case c.Endpoint == "":
		return errors.New("endpoint is required when telemetry is enabled")
	case c.ServiceName == "":
		return errors.New("service_name is required when telemetry is enabled")
	}

	switch c.Protocol {
	case "", ProtocolGRPC, ProtocolHTTP, protocolHTTPProtobuf:
	default:
		return fmt.Errorf("protocol must be %q or %q, got %q", ProtocolGRPC, ProtocolHTTP, c.Protocol)
	}

	if c.Insecure && !c.isLocalEndpoint() {
		return fmt.Errorf("insecure export to %q is not allowed; use a loopback endpoint or set insecure: false", c.Endpoint)
	}

	if c.Sampling.Rate < 0 || c.Sampling.Rate > 1 {
		return fmt.Errorf("sampling.rate must be within [0, 1], got %g", c.Sampling.Rate)
	}
	if c.Metrics.Enabled && c.Metrics.ExportInterval.Duration() <= 0 {
		return errors.New("metrics.export_interval must be positive when metrics are enabled")
	}
	if c.Shutdown.Timeout.Duration() <= 0 {
		return errors.New("shutdown.timeout must be positive")
	}
	return nil
}

// usesHTTP reports whether the OTLP/HTTP exporters are selected.
func (c *Config) usesHTTP() bool {
	return c.Protocol == ProtocolHTTP || c.Protocol == protocolHTTPProtobuf
}

// isLocalEndpoint reports whether the endpoint host is localhost or a
// loopback address.
func (c *Config) isLocalEndpoint() bool {
	host := endpointHost(stripScheme(c.Endpoint))
	if host == "localhost" {
		return true
	}
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.IsLoopback()
}

// endpointHost drops the port from host[:port]. An unbracketed "::1:port"
// is read as the IPv6 loopback with a port.
func endpointHost(endpoint string) string {
	if host, _, err := net.SplitHostPort(endpoint); err == nil {
		return host
	}
	if strings.HasPrefix(endpoint, "::1:") {
		return "::1"
	}
	return strings.TrimSuffix(strings.TrimPrefix(endpoint, "["), "]")
}
