// Package config loads clickaway.json, the configuration file of the
// clickaway server.
//
//	{
//	  "host": "0.0.0.0",
//	  "port": 8080,
//	  "eventsPath": "/_events",
//	  "metricsPath": "/metrics",
//	  "readTimeout": "60s",
//	  "maxMessageSize": 1024,
//	  "log": {"level": "debug", "format": "json"}
//	}
//
// Missing fields take their defaults.
package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/clickaway/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "clickaway.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultEventsPath is the default WebSocket events endpoint.
	DefaultEventsPath = "/_events"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultReadTimeout is the default WebSocket read timeout.
	DefaultReadTimeout = "60s"

	// DefaultMaxMessageSize is the default WebSocket message limit in bytes.
	DefaultMaxMessageSize = 1024
)

// Config represents the complete clickaway.json configuration.
type Config struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// EventsPath is the WebSocket endpoint for input events.
	EventsPath string `json:"eventsPath,omitempty"`

	// MetricsPath is the Prometheus endpoint. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty"`

	// ReadTimeout is the WebSocket read timeout (e.g., "60s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `json:"maxMessageSize,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads clickaway.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E301").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E302").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E302").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.EventsPath == "" {
		c.EventsPath = DefaultEventsPath
	}
	if c.MetricsPath == "" {
		c.MetricsPath = DefaultMetricsPath
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("E303").
			WithDetail("port must be between 1 and 65535, got " + strconv.Itoa(c.Port))
	}
	if c.EventsPath[0] != '/' {
		return errors.New("E303").
			WithDetail("eventsPath must start with /")
	}
	if c.MetricsPath != "-" && c.MetricsPath[0] != '/' {
		return errors.New("E303").
			WithDetail("metricsPath must start with / or be \"-\"")
	}
	if d, err := time.ParseDuration(c.ReadTimeout); err != nil || d <= 0 {
		return errors.New("E303").
			WithDetail("readTimeout must be a positive duration such as \"60s\", got " + strconv.Quote(c.ReadTimeout))
	}
	if c.MaxMessageSize < 0 {
		return errors.New("E303").
			WithDetail("maxMessageSize must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("E303").
			WithDetail("log.format must be \"text\" or \"json\", got " + strconv.Quote(c.Log.Format))
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// ReadTimeoutDuration returns ReadTimeout parsed, or the default when invalid.
func (c *Config) ReadTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ReadTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultReadTimeout)
	}
	return d
}

// MetricsEnabled reports whether the metrics endpoint is served.
func (c *Config) MetricsEnabled() bool {
	return c.MetricsPath != "-"
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E303").
			WithDetail("log.level must be debug, info, warn or error, got " + strconv.Quote(c.Log.Level))
	}
	return level, nil
}

// Logger builds the structured logger described by Log, writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
