package config

import "fmt"

// LoggingConfig controls the operational logger. The decision log is not
// affected by these settings.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// SetDefaults fills unset values.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate rejects unknown levels and formats.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Format)
	}
	return nil
}
