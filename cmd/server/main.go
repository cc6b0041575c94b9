package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/battleship-go/internal/api"
	"github.com/mcoot/battleship-go/internal/factory"
	"github.com/mcoot/battleship-go/internal/model"
	redisstorage "github.com/mcoot/battleship-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/battleship-go/internal/storage/sqlite"
)

func main() {
	// A missing .env file is fine; real environment variables still apply
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	matchCfg, err := matchConfigFromEnv(logger)
	if err != nil {
		logger.Error("invalid match configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		MatchConfig: matchCfg,
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if path := os.Getenv("SQLITE_PATH"); path != "" {
			sqliteCfg.Path = path
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		MatchController: app.MatchController,
		StatsService:    app.StatsService,
		HubManager:      app.HubManager,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := envInt(logger, "PORT", 0); port != 0 {
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)
	server.OnShutdown(app.HubManager.Close)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sweep(ctx, app, envDuration(logger, "MATCH_RETENTION", defaultMatchRetention))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Int("board_size", cfg.MatchConfig.BoardSize),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

const (
	// How long a finished match stays viewable
	defaultMatchRetention = 30 * time.Minute
	sweepInterval         = time.Minute
)

// sweep periodically drops expired matches and unwatched event hubs
func sweep(ctx context.Context, app *factory.App, retention time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.Sweep(retention)
		}
	}
}

// matchConfigFromEnv overrides the classic ruleset with any rule toggles set
// in the environment
func matchConfigFromEnv(logger *slog.Logger) (model.MatchConfig, error) {
	matchCfg := model.DefaultMatchConfig()
	matchCfg.BoardSize = envInt(logger, "BOARD_SIZE", matchCfg.BoardSize)
	matchCfg.ExtraTurnOnHit = envBool(logger, "EXTRA_TURN_ON_HIT", matchCfg.ExtraTurnOnHit)
	matchCfg.ClearTargetsOnSink = envBool(logger, "CLEAR_TARGETS_ON_SINK", matchCfg.ClearTargetsOnSink)
	matchCfg.ForbidAdjacentShips = envBool(logger, "FORBID_ADJACENT_SHIPS", matchCfg.ForbidAdjacentShips)
	if err := matchCfg.Validate(); err != nil {
		return model.MatchConfig{}, fmt.Errorf("BOARD_SIZE: %w", err)
	}
	return matchCfg, nil
}

func envInt(logger *slog.Logger, key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("ignoring invalid integer setting", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return v
}

func envBool(logger *slog.Logger, key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn("ignoring invalid boolean setting", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return v
}

func envDuration(logger *slog.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		logger.Warn("ignoring invalid duration setting", slog.String("key", key), slog.String("value", raw))
		return fallback
	}
	return v
}
