// Package persistence opens the relational database used for refresh logs.
package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/turtacn/cdnflush/internal/config"
	"github.com/turtacn/cdnflush/internal/domain/models"
	"github.com/turtacn/cdnflush/pkg/errors"
)

// OpenDatabase connects to the configured database and migrates the refresh
// log schema. SQLite is the default for single-node deployments; Postgres is
// for shared ones.
func OpenDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, errors.Newf(errors.CodeConfig, "unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeStorage, "open database", err)
	}

	if err := db.AutoMigrate(&models.RefreshLog{}); err != nil {
		return nil, errors.Wrap(errors.CodeStorage, "migrate refresh log schema", err)
	}
	return db, nil
}
