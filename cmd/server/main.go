package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flexio/config"
	"flexio/internal/app"
	"flexio/internal/database"
	"flexio/internal/router"
	"flexio/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()
	logger := a.Logger

	if err := database.AutoMigrate(a.DB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sched, err := scheduler.New(a.Services.Billing, a.Services.Gyms, cfg.Billing.Schedule,
		cfg.Billing.Location, cfg.Billing.Concurrency, logger.With("component", "scheduler"))
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sched.Start()
	logger.Info("billing scheduler started", "schedule", cfg.Billing.Schedule, "next", sched.Next())

	engine := router.Setup(cfg, a.DB, a.Services, a.Hub, a.Registry, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	logger.Info("server stopped")
}
