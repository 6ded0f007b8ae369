// Package config loads the demo server configuration from a YAML file and
// applies defaults and validation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the fully resolved server configuration.
type Config struct {
	// Addr is the TCP address the web server listens on.
	Addr string

	// HTMLDir is the directory the served pages are read from.
	HTMLDir string

	// SleepDelay is how long the /sleep route stalls before answering.
	SleepDelay time.Duration

	// ShutdownTimeout bounds how long teardown waits for in-flight jobs.
	ShutdownTimeout time.Duration

	// Workers is the thread pool size.
	Workers int

	// QueueCapacity is the initial job queue capacity hint.
	QueueCapacity int

	// MetricsEnabled toggles the Prometheus scrape endpoint.
	MetricsEnabled bool

	// MetricsAddr is the scrape endpoint listen address.
	MetricsAddr string
}

// fileConfig mirrors the YAML layout. Durations are strings so the file
// can say "5s" rather than nanosecond counts.
type fileConfig struct {
	Server struct {
		Addr            string `yaml:"addr"`
		HTMLDir         string `yaml:"html_dir"`
		SleepDelay      string `yaml:"sleep_delay"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Pool struct {
		Workers       int `yaml:"workers"`
		QueueCapacity int `yaml:"queue_capacity"`
	} `yaml:"pool"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:            "127.0.0.1:7878",
		HTMLDir:         "html",
		SleepDelay:      5 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		Workers:         4,
		QueueCapacity:   0, // pool default
		MetricsEnabled:  false,
		MetricsAddr:     "127.0.0.1:9100",
	}
}

// Load reads the YAML file at path and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.Server.Addr != "" {
		cfg.Addr = fc.Server.Addr
	}
	if fc.Server.HTMLDir != "" {
		cfg.HTMLDir = fc.Server.HTMLDir
	}
	if fc.Server.SleepDelay != "" {
		d, err := time.ParseDuration(fc.Server.SleepDelay)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid sleep_delay: %w", err)
		}
		cfg.SleepDelay = d
	}
	if fc.Server.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.Server.ShutdownTimeout)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid shutdown_timeout: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if fc.Pool.Workers != 0 {
		cfg.Workers = fc.Pool.Workers
	}
	if fc.Pool.QueueCapacity > 0 {
		cfg.QueueCapacity = fc.Pool.QueueCapacity
	}
	cfg.MetricsEnabled = fc.Metrics.Enabled
	if fc.Metrics.Addr != "" {
		cfg.MetricsAddr = fc.Metrics.Addr
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the pool or server would refuse anyway,
// so mistakes surface at load time with a readable message.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("config: pool.workers must be positive, got %d", c.Workers)
	}
	if c.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if c.SleepDelay < 0 {
		return fmt.Errorf("config: sleep_delay must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown_timeout must be positive")
	}
	if c.MetricsEnabled && c.MetricsAddr == "" {
		return fmt.Errorf("config: metrics.addr must not be empty when metrics are enabled")
	}
	return nil
}
