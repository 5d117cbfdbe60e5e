package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Registry  RegistryConfig  `yaml:"registry"`
	GasOracle GasOracleConfig `yaml:"gasOracle"`
	RPCClient RPCClientConfig `yaml:"rpcClient"`
	Overrides OverridesConfig `yaml:"overrides"`
	Selector  SelectorConfig  `yaml:"selector"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`  // seconds
	WriteTimeout int    `yaml:"writeTimeout"` // seconds
	IdleTimeout  int    `yaml:"idleTimeout"`  // seconds
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g. "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// RegistryConfig selects which chains from the built-in catalog are active.
// An empty list activates the whole catalog.
type RegistryConfig struct {
	TrackedChains []string `yaml:"trackedChains"`
}

// GasOracleConfig holds fee fetching and caching configuration.
type GasOracleConfig struct {
	CacheTTLSeconds      int    `yaml:"cacheTTLSeconds"`
	FeeBufferPercent     int64  `yaml:"feeBufferPercent"`     // applied to fee-market readings only
	MinMaxFeeGwei        string `yaml:"minMaxFeeGwei"`        // floor for the buffered max fee
	MinPriorityFeeGwei   string `yaml:"minPriorityFeeGwei"`   // floor for the buffered priority fee
	MaxConcurrentFetches int    `yaml:"maxConcurrentFetches"` // fan-out limit for the aggregate call
}

// RPCClientConfig holds per-connection RPC configuration.
type RPCClientConfig struct {
	ConnectionTimeoutSeconds int    `yaml:"connectionTimeoutSeconds"`
	CallTimeoutSeconds       int    `yaml:"callTimeoutSeconds"`
	LimiterPeriod            string `yaml:"limiterPeriod"` // e.g. "200ms" between calls per chain
	LimiterBurst             int    `yaml:"limiterBurst"`
}

// OverridesConfig points at the deployed-address override document.
type OverridesConfig struct {
	URL                  string `yaml:"url"`  // remote JSON document; optional
	File                 string `yaml:"file"` // local JSON document; optional
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// SelectorConfig holds defaults applied when a selection request leaves a
// field unset.
type SelectorConfig struct {
	DefaultPreferLayer2 bool   `yaml:"defaultPreferLayer2"`
	DefaultMaxGasGwei   string `yaml:"defaultMaxGasGwei"`
}

// LoadConfig reads and parses the YAML configuration file at the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to built-in
// defaults when the file is missing, logging a warning instead of failing.
func LoadConfigOrDefault(path string, log *logrus.Logger) *Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		if log != nil {
			log.Warnf("Config file not usable (%v), continuing with defaults", err)
		}
		cfg = defaultConfig()
		cfg.applyDefaults()
	}
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15,
			WriteTimeout: 15,
			IdleTimeout:  60,
		},
		Logging: LoggingConfig{Level: "info"},
		GasOracle: GasOracleConfig{
			CacheTTLSeconds:      30,
			FeeBufferPercent:     50,
			MinMaxFeeGwei:        "0.1",
			MinPriorityFeeGwei:   "0.05",
			MaxConcurrentFetches: 8,
		},
		RPCClient: RPCClientConfig{
			ConnectionTimeoutSeconds: 10,
			CallTimeoutSeconds:       10,
			LimiterPeriod:            "100ms",
			LimiterBurst:             5,
		},
		Overrides: OverridesConfig{RequestTimeoutMillis: 5000},
	}
}

func (c *Config) applyDefaults() {
	if c.GasOracle.CacheTTLSeconds <= 0 {
		c.GasOracle.CacheTTLSeconds = 30
	}
	if c.GasOracle.FeeBufferPercent <= 0 {
		c.GasOracle.FeeBufferPercent = 50
	}
	if c.GasOracle.MaxConcurrentFetches <= 0 {
		c.GasOracle.MaxConcurrentFetches = 8
	}
	if c.RPCClient.ConnectionTimeoutSeconds <= 0 {
		c.RPCClient.ConnectionTimeoutSeconds = 10
	}
	if c.RPCClient.CallTimeoutSeconds <= 0 {
		c.RPCClient.CallTimeoutSeconds = 10
	}
	if c.RPCClient.LimiterBurst <= 0 {
		c.RPCClient.LimiterBurst = 1
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

// LimiterPeriodDuration parses the configured limiter period, defaulting to
// 100ms on bad input.
func (c *Config) LimiterPeriodDuration() time.Duration {
	d, err := time.ParseDuration(c.RPCClient.LimiterPeriod)
	if err != nil || d <= 0 {
		return 100 * time.Millisecond
	}
	return d
}
