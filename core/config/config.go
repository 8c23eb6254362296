// Package config loads the resolver's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hashgraph-online/conversational-agent-sub001/core/network"
)

// Duration is a time.Duration that unmarshals from YAML duration strings
// like "90s" as well as integer nanoseconds.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration: %s", value.Value)
	}
	*d = Duration(n)
	return nil
}

// Config is the top-level resolver configuration.
type Config struct {
	Network   string          `yaml:"network"`
	Mirror    MirrorConfig    `yaml:"mirror"`
	Detection DetectionConfig `yaml:"detection"`
}

// MirrorConfig configures the mirror node client.
type MirrorConfig struct {
	// BaseURL overrides the network's default mirror endpoint.
	BaseURL    string   `yaml:"base_url"`
	Timeout    Duration `yaml:"timeout"`
	MaxRetries uint64   `yaml:"max_retries"`
	RateLimit  float64  `yaml:"rate_limit_rps"`
	CacheTTL   Duration `yaml:"cache_ttl"`
}

// DetectionConfig configures format detection.
type DetectionConfig struct {
	CacheTTL Duration `yaml:"cache_ttl"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Network: network.Default.String(),
		Mirror: MirrorConfig{
			Timeout:    Duration(10 * time.Second),
			MaxRetries: 3,
			RateLimit:  50,
			CacheTTL:   Duration(30 * time.Second),
		},
		Detection: DetectionConfig{
			CacheTTL: Duration(5 * time.Minute),
		},
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Network == "" {
		c.Network = def.Network
	}
	if c.Mirror.Timeout == 0 {
		c.Mirror.Timeout = def.Mirror.Timeout
	}
	if c.Mirror.MaxRetries == 0 {
		c.Mirror.MaxRetries = def.Mirror.MaxRetries
	}
	if c.Mirror.RateLimit == 0 {
		c.Mirror.RateLimit = def.Mirror.RateLimit
	}
	if c.Mirror.CacheTTL == 0 {
		c.Mirror.CacheTTL = def.Mirror.CacheTTL
	}
	if c.Detection.CacheTTL == 0 {
		c.Detection.CacheTTL = def.Detection.CacheTTL
	}
}

// NetworkType returns the configured network, falling back to the default
// for unrecognized names.
func (c *Config) NetworkType() network.Type {
	t, ok := network.Parse(c.Network)
	if !ok {
		return network.Default
	}
	return t
}

// MirrorBaseURL returns the configured mirror endpoint or the network's
// public default.
func (c *Config) MirrorBaseURL() string {
	if c.Mirror.BaseURL != "" {
		return c.Mirror.BaseURL
	}
	return c.NetworkType().MirrorBaseURL()
}
