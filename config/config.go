// Package config loads the entrypoint's raw configuration from an injected
// environment snapshot. Values stay string-typed here; semantic parsing and
// filesystem resolution happen in the resolver, which owns the diagnostics.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Grupo-MACC/entrypoint/logger"
)

// Environment variable names consumed by the entrypoint.
const (
	EnvAppModule   = "APP_MODULE"
	EnvServiceName = "SERVICE_NAME"
	EnvHost        = "HOST"
	EnvPort        = "PORT"
	EnvReload      = "RELOAD"
	EnvExtraArgs   = "UVICORN_EXTRA_ARGS"
	EnvCertFile    = "SSL_CERTFILE"
	EnvKeyFile     = "SSL_KEYFILE"
	EnvCertRoot    = "CERT_ROOT"
	EnvAppRoot     = "APP_ROOT"
	EnvServerBin   = "SERVER_BIN"
	EnvGracePeriod = "GRACE_PERIOD"
	EnvEntryFile   = "ENTRY_FILE"
	EnvSearchDepth = "SEARCH_DEPTH"
	EnvTimestamp   = "LOG_TIMESTAMP"
)

// Config is the raw environment-backed configuration. Every field mirrors
// one environment variable; empty means unset. The search depth and entry
// filename are deliberately configuration rather than buried constants.
type Config struct {
	ServiceName string `mapstructure:"service_name"`
	AppModule   string `mapstructure:"app_module"`
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	Reload      string `mapstructure:"reload"`
	ExtraArgs   string `mapstructure:"uvicorn_extra_args"`
	CertFile    string `mapstructure:"ssl_certfile"`
	KeyFile     string `mapstructure:"ssl_keyfile"`
	CertRoot    string `mapstructure:"cert_root"`
	AppRoot     string `mapstructure:"app_root"`
	ServerBin   string `mapstructure:"server_bin"`
	GracePeriod string `mapstructure:"grace_period"`
	EntryFile   string `mapstructure:"entry_file"`
	SearchDepth string `mapstructure:"search_depth"`

	Logging logger.Config `mapstructure:",squash"`
}

// Load binds an environment snapshot into a Config and applies static
// defaults. Semantic validation of individual values is left to the
// resolver so every failure carries the field's diagnostic context.
func Load(env Environ) (*Config, error) {
	v := viper.New()
	bindSnapshot(v, env)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment: %w", err)
	}

	cfg.ApplyDefaults()

	// Bool zero-value can't distinguish unset from explicit false.
	if _, ok := env.Lookup(EnvTimestamp); !ok {
		cfg.Logging.Timestamp = true
	}

	return cfg, nil
}

// ApplyDefaults applies the service's static defaults to unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == "" {
		c.Port = "5004"
	}
	if c.CertRoot == "" {
		c.CertRoot = "/certs"
	}
	if c.AppRoot == "" {
		c.AppRoot = "/app"
	}
	if c.ServerBin == "" {
		c.ServerBin = "uvicorn"
	}
	if c.GracePeriod == "" {
		c.GracePeriod = "10s"
	}
	if c.EntryFile == "" {
		c.EntryFile = "main.py"
	}
	if c.SearchDepth == "" {
		c.SearchDepth = "2"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.ServiceName
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the fields the config layer owns. Per-value parsing
// (port, durations, depth) is the resolver's concern.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// bindSnapshot sets every snapshot entry on the viper instance under its
// lowercased name, matching the mapstructure tags above.
func bindSnapshot(v *viper.Viper, env Environ) {
	for key, value := range env {
		v.Set(strings.ToLower(key), value)
	}
}
