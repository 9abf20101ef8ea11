package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mini-mcu/config"
	"mini-mcu/internal/api/handler"
	"mini-mcu/internal/api/router"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/auditlog"
	"mini-mcu/pkg/cache"
	"mini-mcu/pkg/database"
	"mini-mcu/pkg/jwt"
	applogger "mini-mcu/pkg/logger"
	"mini-mcu/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting mini-mcu",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", cfg.MCU.Timezone),
	)

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations failed", zap.Error(err))
	}

	// 4. redis (optional: the service runs without it)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.MCU.SchemaCacheBackend == config.CacheBackendRedis {
				logger.Fatal("redis required by schema cache", zap.Error(err))
			}
			logger.Warn("redis unavailable, upload rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	// 5. schema cache
	var store cache.Store = cache.NewMemory()
	if cfg.MCU.SchemaCacheBackend == config.CacheBackendRedis {
		store = rdb
	}

	// 6. audit log
	audit, err := auditlog.NewWriter(cfg.MCU.LogDir)
	if err != nil {
		logger.Fatal("open audit log dir failed", zap.Error(err))
	}

	// 7. Repository → Service → Handler
	repo := repository.NewRepository(db)
	repo.Schema = repository.NewCachedSchemaInspector(repo.Schema, store, cfg.MCU.SchemaCacheTTL)
	clock := ingest.SystemClock{Location: cfg.MCU.Location()}
	svc := service.NewService(cfg, repo, audit, clock, logger)
	h := handler.NewHandler(svc)

	jwtMgr := jwt.NewManager(&cfg.Auth)
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown. Large workbooks take a while,
	// hence the generous timeouts.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
