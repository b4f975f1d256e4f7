// Package service implements the billing, reward and payment operations on
// top of the repositories.
package service

import (
	"log/slog"
	"time"

	"flexio/config"
	"flexio/internal/billing"
	"flexio/internal/lock"
	"flexio/internal/metrics"
	"flexio/internal/repository"
	"flexio/pkg/payment"

	"gorm.io/gorm"
)

// Deps carries the optional collaborators built in main.
type Deps struct {
	Locker   lock.Locker
	Provider payment.Provider
	Metrics  *metrics.Metrics
	Events   EventPublisher
	Logger   *slog.Logger
	Now      func() time.Time
}

type Services struct {
	Billing  *BillingService
	Rewards  *RewardService
	Presence *PresenceService
	Payments *PaymentService
	Gyms     *repository.GymRepository
	Users    *repository.UserRepository
	Members  *repository.MembershipRepository
}

func New(cfg *config.Config, db *gorm.DB, deps Deps) *Services {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	walletRepo := repository.NewWalletRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	gymRepo := repository.NewGymRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	billingSvc := NewBillingService(walletRepo, membershipRepo, BillingOptions{
		Calculator: billing.NewCalculator(cfg.Billing.UnitPrice, cfg.Billing.FreeLimit),
		Location:   cfg.Billing.Location,
		Locker:     deps.Locker,
		LockTTL:    cfg.Redis.LockTTL,
		Metrics:    deps.Metrics,
		Events:     deps.Events,
		Logger:     deps.Logger.With("component", "billing"),
		Now:        deps.Now,
	})
	presenceSvc := NewPresenceService(gymRepo, membershipRepo, locationRepo,
		cfg.Geofence.RadiusMeters, cfg.Geofence.MaxSampleGap, cfg.Geofence.MinimumPresence,
		deps.Metrics, deps.Now)
	rewardSvc := NewRewardService(membershipRepo, settingRepo, checkInRepo, userRepo, presenceSvc, RewardOptions{
		Rewards:  cfg.Rewards,
		Geofence: cfg.Geofence,
		Location: cfg.Billing.Location,
		Metrics:  deps.Metrics,
		Events:   deps.Events,
		Logger:   deps.Logger.With("component", "rewards"),
		Now:      deps.Now,
	})
	paymentSvc := NewPaymentService(paymentRepo, billingSvc, deps.Provider,
		cfg.Payment.Currency, cfg.Payment.OrderExpiry, deps.Logger.With("component", "payments"), deps.Now)

	return &Services{
		Billing:  billingSvc,
		Rewards:  rewardSvc,
		Presence: presenceSvc,
		Payments: paymentSvc,
		Gyms:     gymRepo,
		Users:    userRepo,
		Members:  membershipRepo,
	}
}
