package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gigvault/escrow-service/internal/app/background"
	"github.com/gigvault/escrow-service/internal/app/setup"
	"github.com/gigvault/escrow-service/internal/config"
	"github.com/gigvault/escrow-service/internal/delivery/http/handlers"
	"github.com/gigvault/escrow-service/internal/infrastructure/migrate"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	// Init database, gateway, kafka, metrics, repositories
	deps := setup.InitializeDependencies(cfg)
	defer deps.Close()

	if path := os.Getenv("ESCROW_MIGRATIONS_PATH"); path != "" {
		if err := migrate.RunMigrations(deps.DB, path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	uc := setup.InitializeUseCases(deps)

	// Background reconcile workers
	tasks := background.NewBackgroundTasks(uc.EscrowUsecase, cfg.Reconciler)
	tasks.StartAll(context.Background())

	// Metrics endpoint
	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsAddr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		slog.Info("metrics server listening", "addr", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
			slog.Error("metrics server stopped", "error", err.Error())
		}
	}()

	// HTTP API
	escrowHandler := handlers.NewEscrowHandler(uc.EscrowUsecase, uc.DisputeUsecase, uc.UserDirectory)
	mux := http.NewServeMux()
	escrowHandler.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("escrow service listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
