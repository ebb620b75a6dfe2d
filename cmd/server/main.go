package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/mathsprout/internal/api"
	"github.com/vytor/mathsprout/internal/config"
	"github.com/vytor/mathsprout/internal/db"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/repository/sqlite"
	"github.com/vytor/mathsprout/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("MathSprout Stats Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("max_level=%d", cfg.MaxLevel)
	log.Debug("read_timeout=%s", cfg.ReadTimeout)
	log.Debug("write_timeout=%s", cfg.WriteTimeout)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.WithError(err).Error("failed to open database")
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	sessionRepo := sqlite.NewSessionRepository(database.DB)
	criteriaRepo := sqlite.NewCriteriaRepository(database.DB)
	studentRepo := sqlite.NewStudentRepository(database.DB)

	srv := &api.Server{
		DB:                 database.DB,
		SessionService:     services.NewSessionService(sessionRepo),
		StatsService:       services.NewStatsService(sessionRepo, criteriaRepo, studentRepo, cfg.MaxLevel),
		ProgressionService: services.NewProgressionService(sessionRepo, criteriaRepo, cfg.MaxLevel),
		StudentService:     services.NewStudentService(studentRepo),
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serverErr:
		log.WithError(err).Error("HTTP server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("MathSprout Stats Server Stopped")
	log.Info("===========================================")
}
