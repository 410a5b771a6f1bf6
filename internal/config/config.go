package config

import (
	"fmt"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Purge    PurgeConfig    `mapstructure:"purge"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	EnablePprof  bool   `mapstructure:"enable_pprof"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres or sqlite
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	Path     string `mapstructure:"path"` // sqlite file path
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type PurgeConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	DebounceWindow int    `mapstructure:"debounce_window"` // in seconds, 0 disables debouncing
	HTTPTimeout    int    `mapstructure:"http_timeout"`    // in seconds
	SettingsFile   string `mapstructure:"settings_file"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Purge.DebounceWindow < 0 {
		return fmt.Errorf("debounce window must not be negative: %d", c.Purge.DebounceWindow)
	}
	if c.Purge.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive: %d", c.Purge.HTTPTimeout)
	}
	return nil
}
