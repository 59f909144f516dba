package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the server configuration.
type Config struct {
	// Address is the listen address (e.g. "localhost:3000").
	Address string

	// EventsPath is the WebSocket endpoint the client streams input events to.
	// Default: "/_events".
	EventsPath string

	// MetricsPath serves Prometheus metrics. Empty disables the endpoint.
	// Default: "/metrics".
	MetricsPath string

	// ReadTimeout is the maximum time to wait for a message or a pong from
	// the client. Default: 60 seconds.
	ReadTimeout time.Duration

	// HeartbeatInterval is the time between pings sent to the client. Every
	// pong extends the read deadline, so an idle client that answers pings
	// stays connected. Must be shorter than ReadTimeout.
	// Default: half of ReadTimeout.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 1KB. Event frames are a few dozen bytes.
	MaxMessageSize int64

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the WebSocket upgrade origin.
	// nil uses gorilla's same-origin check.
	CheckOrigin func(r *http.Request) bool

	// Registry receives the server and document metrics.
	// Default: prometheus.DefaultRegisterer, gathered by prometheus.DefaultGatherer.
	// Servers created with the same Registry share their collectors instead of
	// failing on duplicate registration.
	Registry prometheus.Registerer

	// Gatherer is what MetricsPath exposes.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         "localhost:3000",
		EventsPath:      "/_events",
		MetricsPath:     "/metrics",
		ReadTimeout:     60 * time.Second,
		MaxMessageSize:  1024,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("server: invalid config")

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.Join(ErrInvalidConfig, errors.New("address is required"))
	}
	if c.EventsPath == "" || c.EventsPath[0] != '/' {
		return errors.Join(ErrInvalidConfig, errors.New("events path must start with /"))
	}
	if c.MetricsPath != "" && c.MetricsPath[0] != '/' {
		return errors.Join(ErrInvalidConfig, errors.New("metrics path must start with /"))
	}
	if c.ReadTimeout <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("read timeout must be positive"))
	}
	if c.HeartbeatInterval < 0 || (c.HeartbeatInterval > 0 && c.HeartbeatInterval >= c.ReadTimeout) {
		return errors.Join(ErrInvalidConfig, errors.New("heartbeat interval must be shorter than the read timeout"))
	}
	if c.MaxMessageSize <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("max message size must be positive"))
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.EventsPath == "" {
		c.EventsPath = def.EventsPath
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = c.ReadTimeout / 2
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
