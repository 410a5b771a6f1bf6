package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
		Purge:    PurgeConfig{Enabled: true, DebounceWindow: 5, HTTPTimeout: 30},
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Purge.DebounceWindow = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Purge.HTTPTimeout = 0
	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "app", Password: "pw",
		Database: "cdnflush", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=app password=pw dbname=cdnflush sslmode=disable",
		cfg.GetDSN())
}
