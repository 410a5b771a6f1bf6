package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/turtacn/cdnflush/pkg/errors"
)

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "cdnflush.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("purge.enabled", true)
	v.SetDefault("purge.debounce_window", 5)
	v.SetDefault("purge.http_timeout", 30)
	v.SetDefault("purge.settings_file", "configs/settings.yaml")

	// Load from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/cdnflush/")
	v.AddConfigPath("configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.CodeConfig, "read config file", err)
		}
	}

	// Load from environment variables
	v.SetEnvPrefix("CDNFLUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "validate config", err)
	}

	return &cfg, nil
}
