package server

import "time"

const (
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
)

// Config holds environment-driven settings for the metrics endpoint.
// An empty Addr disables the endpoint.
type Config struct {
	Addr              string        `env:"METRICS_ADDR" envDefault:""`
	ShutdownTimeout   time.Duration `env:"METRICS_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	ReadHeaderTimeout time.Duration `env:"METRICS_READ_HEADER_TIMEOUT" envDefault:"5s"`
}

// Enabled reports whether an address is configured.
func (c Config) Enabled() bool { return c.Addr != "" }

// NewFromConfig creates a Server from cfg. Options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	return New(cfg.Addr, append([]Option{
		WithShutdownTimeout(cfg.ShutdownTimeout),
		WithReadHeaderTimeout(cfg.ReadHeaderTimeout),
	}, opts...)...), nil
}
