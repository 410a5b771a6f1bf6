package config

import (
	"context"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/errors"
	"github.com/turtacn/cdnflush/pkg/logger"
)

// SettingsStore serves purge settings from a YAML file and hot-reloads them
// when the file changes, so provider credentials and refresh policy can be
// edited without a restart.
type SettingsStore struct {
	v      *viper.Viper
	logger logger.Logger

	mu       sync.RWMutex
	settings models.Settings
}

// NewSettingsStore reads the settings file at path and starts watching it.
func NewSettingsStore(path string, log logger.Logger) (*SettingsStore, error) {
	s := &SettingsStore{
		v:      viper.New(),
		logger: log.WithComponent("SettingsStore"),
	}

	s.v.SetConfigFile(path)
	if err := s.v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "read settings file", err)
	}
	if err := s.reload(); err != nil {
		return nil, err
	}

	s.v.OnConfigChange(func(in fsnotify.Event) {
		if err := s.reload(); err != nil {
			s.logger.Error(context.Background(), "failed to reload settings", err,
				logger.String("file", in.Name))
			return
		}
		s.logger.Info(context.Background(), "settings reloaded",
			logger.String("file", in.Name))
	})
	s.v.WatchConfig()

	return s, nil
}

func (s *SettingsStore) reload() error {
	var settings models.Settings
	if err := s.v.Unmarshal(&settings); err != nil {
		return errors.Wrap(errors.CodeConfig, "unmarshal settings", err)
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current settings. The copy owns its own
// provider slice, so a concurrent reload cannot mutate it.
func (s *SettingsStore) Snapshot() *models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.settings
	snap.Providers = make([]models.ProviderConfig, len(s.settings.Providers))
	copy(snap.Providers, s.settings.Providers)
	return &snap
}
