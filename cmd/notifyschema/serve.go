package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sumire/notifyschema/internal/config"
	"github.com/sumire/notifyschema/internal/handler"
	"github.com/sumire/notifyschema/internal/metrics"
	"github.com/sumire/notifyschema/internal/repository"
	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/service"
	"github.com/sumire/notifyschema/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the validation API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	validationMetrics, err := metrics.NewValidationMetrics(reg)
	if err != nil {
		return err
	}

	opts := []validation.Option{validation.WithRecorder(validationMetrics)}
	if cfg.IgnoreUnknownFields {
		opts = append(opts, validation.WithIgnoreUnknownFields())
	}

	var tracker *validation.ChannelTracker
	if cfg.ChannelTracking {
		store, closeStore, err := openChannelStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer closeStore()
		tracker = validation.NewChannelTracker(store, slog.Default())
		opts = append(opts, validation.WithChannelTracker(tracker))
	}

	var tokens *service.TokenService
	if cfg.AuthEnabled() {
		tokens = service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		slog.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	e := handler.NewRouter(handler.RouterConfig{
		Validator: validation.New(schema.Default(), opts...),
		Registry:  schema.Default(),
		Tracker:   tracker,
		Tokens:    tokens,
		Gatherer:  reg,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// openChannelStore uses Postgres when a DSN is configured and process memory otherwise.
func openChannelStore(ctx context.Context, databaseURL string) (validation.ChannelStore, func(), error) {
	if databaseURL == "" {
		slog.Info("channel tracking in memory")
		return validation.NewMemoryChannelStore(), func() {}, nil
	}

	db, err := sqlx.ConnectContext(ctx, "pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	repo := repository.NewChannelRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	slog.Info("database connected")
	return repo, func() { _ = db.Close() }, nil
}
