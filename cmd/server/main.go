package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/turtacn/cdnflush/internal/application"
	"github.com/turtacn/cdnflush/internal/config"
	"github.com/turtacn/cdnflush/internal/infrastructure/audit"
	"github.com/turtacn/cdnflush/internal/infrastructure/cdn"
	"github.com/turtacn/cdnflush/internal/infrastructure/monitoring"
	"github.com/turtacn/cdnflush/internal/infrastructure/persistence"
	httpiface "github.com/turtacn/cdnflush/internal/interfaces/http"
	"github.com/turtacn/cdnflush/internal/interfaces/http/handlers"
	"github.com/turtacn/cdnflush/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger(cfg.Log.Level)

	db, err := persistence.OpenDatabase(&cfg.Database)
	if err != nil {
		appLogger.Fatal(context.Background(), "Failed to open database", err)
	}

	settings, err := config.NewSettingsStore(cfg.Purge.SettingsFile, appLogger)
	if err != nil {
		appLogger.Fatal(context.Background(), "Failed to load purge settings", err)
	}

	metrics := monitoring.NewMetrics()
	client := &http.Client{Timeout: time.Duration(cfg.Purge.HTTPTimeout) * time.Second}
	factory := cdn.NewFactory(client, appLogger)
	sink := audit.NewGormAuditSink(db)
	debouncer := application.NewDebouncer(time.Duration(cfg.Purge.DebounceWindow)*time.Second, appLogger)

	manager := application.NewRefreshManager(
		func() bool { return cfg.Purge.Enabled },
		settings,
		factory,
		sink,
		debouncer,
		metrics,
		appLogger,
	)

	healthHandler := handlers.NewHealthHandler(db)
	purgeHandler := handlers.NewPurgeHandler(manager, settings, appLogger)
	logsHandler := handlers.NewLogsHandler(sink, appLogger)

	router := httpiface.NewRouter(cfg, appLogger, healthHandler, purgeHandler, logsHandler)
	if err := router.Start(); err != nil {
		appLogger.Fatal(context.Background(), "HTTP server failed", err)
	}
}
