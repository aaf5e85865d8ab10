package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/memoryxin/battlechess/internal/api"
	"github.com/memoryxin/battlechess/internal/dependencies/clock"
	"github.com/memoryxin/battlechess/internal/factory"
	"github.com/memoryxin/battlechess/internal/logging"
	"github.com/memoryxin/battlechess/internal/server"
	redisstorage "github.com/memoryxin/battlechess/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		StorageType: os.Getenv("STORAGE_TYPE"),
		DBPath:      getEnvOrDefault("BCHESS_DB", "data/user.db"),
		Logger:      logger,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// The audit trail goes to dated files, one per day
	logDir := getEnvOrDefault("BCHESS_LOG_DIR", "log")
	daily, err := logging.NewDailyWriter(logDir, clock.New())
	if err != nil {
		logger.Error("failed to open audit log", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = daily.Close() }()
	cfg.AuditWriter = daily

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	// Create the game server
	gameServer := server.New(server.Config{
		Addr:   getEnvOrDefault("BCHESS_ADDR", server.DefaultAddr),
		Auth:   app.AuthService,
		Pool:   app.Pool,
		Random: app.Random,
		Audit:  app.Audit,
		Logger: logger,
	})

	// Create the ops API server
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Status:      gameServer,
		AuthService: app.AuthService,
	})
	apiConfig := api.DefaultServerConfig()
	apiConfig.Addr = getEnvOrDefault("BCHESS_HTTP_ADDR", apiConfig.Addr)
	apiServer := api.NewServer(apiRouter, apiConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start both servers
	errCh := make(chan error, 2)
	go func() {
		errCh <- gameServer.Run(ctx)
	}()
	go func() {
		errCh <- apiServer.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := apiServer.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
