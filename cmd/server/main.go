package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"oraex/internal/api"
	"oraex/internal/auth"
	"oraex/internal/config"
	"oraex/internal/db"
	"oraex/internal/services"
	"oraex/internal/store"
	"oraex/webembed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := newLogger(cfg.LogLevel)

	database, err := db.Open(cfg)
	if err != nil {
		log.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	st := store.New(database)
	if err := st.EnsureAdmin(ctx, "admin", getenvDefault("ADMIN_PASSWORD", "admin123")); err != nil {
		log.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	server := &api.Server{
		Database: database,
		Store:    st,
		Sessions: auth.NewManager(time.Duration(cfg.SessionTTLHours) * time.Hour),
		Import:   services.NewImportService(st, log),
		Sheet:    services.NewSheetService(cfg, log),
		Log:      log,
	}
	router := server.NewEngine()
	if !webembed.Register(router) {
		log.Warn("embedded frontend unavailable, API only")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.Addr, "driver", database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl, TimeFormat: time.TimeOnly}))
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
