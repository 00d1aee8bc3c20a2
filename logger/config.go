package logger

import "fmt"

// Config contains logging configuration.
type Config struct {
	Level       string `mapstructure:"log_level"`
	Format      string `mapstructure:"log_format"`
	Output      string `mapstructure:"log_output"`
	NoColor     bool   `mapstructure:"log_no_color"`
	Timestamp   bool   `mapstructure:"log_timestamp"`
	ServiceName string `mapstructure:"service_name"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	for _, v := range validLevels {
		if c.Level == v {
			return nil
		}
	}
	return fmt.Errorf("log_level must be one of %v (got: %s)", validLevels, c.Level)
}
