// Package config loads and validates the shelf.yaml configuration file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shelf-ui/shelf/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "shelf.yaml"

	// DefaultAddress is the default server listen address.
	DefaultAddress = "localhost:8460"

	// DefaultPollInterval is the default snapshot poll interval for
	// clients that cannot hold a feed connection.
	DefaultPollInterval = 5 * time.Second

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "shelf"
)

// Config is the complete shelf.yaml configuration.
type Config struct {
	// Server configures the demo/library server.
	Server ServerConfig `yaml:"server,omitempty"`

	// Thumbs configures where thumbnail bytes come from.
	Thumbs ThumbsConfig `yaml:"thumbs,omitempty"`

	// Metrics configures Prometheus metric naming.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// Seed lists apps loaded into the library at startup.
	Seed []SeedApp `yaml:"seed,omitempty"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Address is the listen address (host:port).
	Address string `yaml:"address,omitempty"`

	// PollInterval is advertised to polling clients.
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
}

// ThumbsConfig selects the thumbnail store backend. When Bucket is empty
// the in-memory store is used.
type ThumbsConfig struct {
	// Bucket is the S3 bucket holding thumbnails.
	Bucket string `yaml:"bucket,omitempty"`

	// Prefix is the key prefix within the bucket.
	Prefix string `yaml:"prefix,omitempty"`

	// Region is the AWS region; empty defers to the SDK's resolution.
	Region string `yaml:"region,omitempty"`
}

// MetricsConfig configures Prometheus metric naming.
type MetricsConfig struct {
	// Namespace is the metrics namespace.
	Namespace string `yaml:"namespace,omitempty"`
}

// SeedApp is one startup catalog entry.
type SeedApp struct {
	Title       string `yaml:"title"`
	ThumbKey    string `yaml:"thumbKey,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      DefaultAddress,
			PollInterval: DefaultPollInterval,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Load reads ConfigFileName from the current directory. A missing file is
// not an error: defaults are returned.
func Load() (*Config, error) {
	return LoadFrom(ConfigFileName)
}

// LoadFrom reads and validates the configuration at path. A missing file
// yields defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "S101", errors.CategoryConfig, "cannot read "+path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "S102", errors.CategoryConfig, "invalid YAML in "+path).
			WithSuggestion("check indentation and field names against the documented schema")
	}
	if err := cfg.applyDefaultsAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaultsAndValidate() error {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.PollInterval == 0 {
		c.Server.PollInterval = DefaultPollInterval
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}

	if c.Server.PollInterval < time.Second {
		return errors.Newf("S103", errors.CategoryValidation,
			"pollInterval %s is below the 1s minimum", c.Server.PollInterval).
			WithSuggestion("use 1s or longer to avoid hammering the snapshot endpoint")
	}
	if c.Thumbs.Prefix != "" && c.Thumbs.Bucket == "" {
		return errors.New("S104", errors.CategoryValidation,
			"thumbs.prefix is set but thumbs.bucket is empty").
			WithSuggestion("set thumbs.bucket or remove thumbs.prefix")
	}
	for i, seed := range c.Seed {
		if seed.Title == "" {
			return errors.Newf("S105", errors.CategoryValidation,
				"seed[%d] has no title", i)
		}
	}
	return nil
}
