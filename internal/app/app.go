// Package app wires configuration, storage and services for the binaries.
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"flexio/config"
	"flexio/internal/database"
	"flexio/internal/lock"
	"flexio/internal/logging"
	"flexio/internal/metrics"
	"flexio/internal/service"
	"flexio/internal/ws"
	"flexio/pkg/payment"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Hub      *ws.Hub
	Logger   *slog.Logger
	Services *service.Services
}

// New connects to the database and, when configured, Redis. The caller owns
// Close.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.Log, os.Stdout)

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	var locker lock.Locker = lock.Noop{}
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = lock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			closeDB(db)
			_ = rdb.Close()
			return nil, err
		}
		locker = lock.NewRedisLocker(rdb)
		logger.Info("billing lock enabled", "redis", cfg.Redis.Addr)
	}

	provider, err := NewProvider(cfg.Payment)
	if err != nil {
		closeDB(db)
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)
	hub := ws.NewHub()

	return &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Registry: reg,
		Hub:      hub,
		Logger:   logger,
		Services: service.New(cfg, db, service.Deps{
			Locker:   locker,
			Provider: provider,
			Metrics:  m,
			Events:   hub,
			Logger:   logger,
		}),
	}, nil
}

func NewProvider(cfg config.PaymentConfig) (payment.Provider, error) {
	switch cfg.Provider {
	case "", "stub":
		return payment.NewStubProvider(), nil
	case "stripe":
		if cfg.StripeSecretKey == "" {
			return nil, errors.New("payment.stripe_secret_key is required for the stripe provider")
		}
		return payment.NewStripeProvider(cfg.StripeSecretKey, nil), nil
	}
	return nil, errors.New("unknown payment provider: " + cfg.Provider)
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	closeDB(a.DB)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
