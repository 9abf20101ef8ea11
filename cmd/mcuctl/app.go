package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"mini-mcu/config"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/auditlog"
	"mini-mcu/pkg/cache"
	"mini-mcu/pkg/database"
	applogger "mini-mcu/pkg/logger"
)

// app holds the services a command needs. close releases the database.
type app struct {
	svc    *service.Service
	logger *zap.Logger
	close  func()
}

// newApp wires the same Repository → Service chain as the server. The
// schema cache is always in-process: a CLI run is one short batch.
func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}

	audit, err := auditlog.NewWriter(cfg.MCU.LogDir)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	repo := repository.NewRepository(db)
	repo.Schema = repository.NewCachedSchemaInspector(repo.Schema, cache.NewMemory(), cfg.MCU.SchemaCacheTTL)
	clock := ingest.SystemClock{Location: cfg.MCU.Location()}

	return &app{
		svc:    service.NewService(cfg, repo, audit, clock, logger),
		logger: logger,
		close: func() {
			sqlDB.Close()
			logger.Sync()
		},
	}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
