package service

import (
	"context"
	"testing"
	"time"

	"flexio/config"
	"flexio/internal/domain"
	"flexio/internal/logging"
	"flexio/internal/metrics"
	"flexio/internal/models"
	"flexio/internal/repository"
	"flexio/internal/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	cfg   *config.Config
	svc   *Services
	clock *time.Time
	owner *models.User
	gym   *models.Gym
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := config.Default()
	clock := now
	f := &fixture{db: db, cfg: cfg, clock: &clock}
	f.svc = New(cfg, db, Deps{
		Metrics: metrics.MustNewMetrics(prometheus.NewRegistry()),
		Logger:  logging.Discard(),
		Now:     func() time.Time { return *f.clock },
	})
	f.owner = testutil.CreateUser(t, db, "owner@flexio.test", domain.RoleOwner)
	f.gym = testutil.CreateGym(t, db, f.owner.ID, -1.2921, 36.8219)
	return f
}

func (f *fixture) setNow(t time.Time) { *f.clock = t }

func (f *fixture) fund(t *testing.T, amount string) {
	t.Helper()
	err := repository.NewWalletRepository(f.db).Append(context.Background(), &models.WalletTransaction{
		GymID:  f.gym.ID,
		Type:   domain.TxRecharge,
		Amount: decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
}

func (f *fixture) ledgerCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.WalletTransaction{}).Where("gym_id = ?", f.gym.ID).Count(&n).Error)
	return n
}
