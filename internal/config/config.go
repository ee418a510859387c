// Package config provides configuration types for the JDWP proxy.
//
// The schema intentionally excludes anything beyond what a transparent
// multiplexing proxy needs: no access control, no audit persistence, no
// request inspection. Those are the proxy's explicit non-goals.
package config

// ProxyConfig is the top-level configuration for the JDWP proxy.
type ProxyConfig struct {
	// Listen configures the address debugger clients connect to.
	Listen ListenConfig `yaml:"listen" mapstructure:"listen"`

	// Upstream configures the JVM the proxy connects to.
	Upstream UpstreamConfig `yaml:"upstream" mapstructure:"upstream"`

	// Frontend optionally launches a debugger front-end process once the
	// proxy's listener is bound, the way a JDWP-aware IDE would be spawned
	// against a known port.
	Frontend FrontendConfig `yaml:"frontend" mapstructure:"frontend"`

	// Metrics configures the Prometheus/health HTTP listener.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// Telemetry configures OpenTelemetry tracing of forwarded requests.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn" (or "warning"), "error".
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// DevMode forces the log level to "debug".
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ListenConfig configures the client-facing listener.
type ListenConfig struct {
	// Addr is the address debugger clients dial (e.g. "localhost:1234").
	Addr string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`

	// IncomingQueueCapacity bounds the shared incoming-command queue. Must
	// be large enough to absorb a burst from every attached client without
	// the Upstream Writer falling behind.
	IncomingQueueCapacity int `yaml:"incoming_queue_capacity" mapstructure:"incoming_queue_capacity" validate:"omitempty,min=1"`
}

// UpstreamConfig configures the JVM the proxy dials.
type UpstreamConfig struct {
	// Addr is the JVM's JDWP listen address (e.g. "localhost:5005").
	Addr string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`

	// DialTimeout bounds the initial connection and handshake with the JVM
	// (e.g. "10s").
	DialTimeout string `yaml:"dial_timeout" mapstructure:"dial_timeout" validate:"omitempty"`

	// OutstandingQueueCapacity bounds the shared outstanding-command queue
	// that carries correspondence records from the Upstream Writer to the
	// Upstream Reader. It does not cap the number of commands in flight: the
	// reader drains this queue into its correspondence table on every frame.
	OutstandingQueueCapacity int `yaml:"outstanding_queue_capacity" mapstructure:"outstanding_queue_capacity" validate:"omitempty,min=1"`
}

// FrontendConfig optionally spawns a debugger front-end process once the
// proxy is listening, inheriting the parent's stdio.
type FrontendConfig struct {
	// Command is the executable to launch. Empty disables the launcher.
	Command string `yaml:"command" mapstructure:"command"`

	// Args are the arguments passed to Command.
	Args []string `yaml:"args" mapstructure:"args"`
}

// MetricsConfig configures the Prometheus/health HTTP listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr    string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *ProxyConfig) SetDefaults() {
	if c.Listen.Addr == "" {
		c.Listen.Addr = "localhost:1234"
	}
	if c.Listen.IncomingQueueCapacity == 0 {
		c.Listen.IncomingQueueCapacity = 500
	}

	if c.Upstream.Addr == "" {
		c.Upstream.Addr = "localhost:5005"
	}
	if c.Upstream.DialTimeout == "" {
		c.Upstream.DialTimeout = "10s"
	}
	if c.Upstream.OutstandingQueueCapacity == 0 {
		c.Upstream.OutstandingQueueCapacity = 500
	}

	if c.Metrics.Addr == "" {
		c.Metrics.Addr = "127.0.0.1:9090"
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DevMode {
		c.LogLevel = "debug"
	}
}
