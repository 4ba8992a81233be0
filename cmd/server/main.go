package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/chorepoint/chorepoint/internal/api"
	"github.com/chorepoint/chorepoint/internal/auth"
	"github.com/chorepoint/chorepoint/internal/config"
	"github.com/chorepoint/chorepoint/internal/service"
	"github.com/chorepoint/chorepoint/internal/storage/sqlite"
	"github.com/chorepoint/chorepoint/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	logger := slog.Default()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)

	achievements := service.NewAchievementService(store, logger)
	users := service.NewUserService(store, achievements, logger)
	tasks := service.NewTaskService(store, achievements, logger)
	rewards := service.NewRewardService(store, logger)
	authSvc := service.NewAuthService(store, jwtManager, logger)

	server := api.NewServer(users, tasks, achievements, rewards, authSvc, jwtManager)
	if cfg.MetricsEnabled {
		server.EnableMetrics()
	}

	logger.Info("Server starting", "address", cfg.Addr, "metrics", cfg.MetricsEnabled)
	if err := http.ListenAndServe(cfg.Addr, server.Handler()); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
