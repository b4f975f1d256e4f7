package repository

import (
	"context"
	"testing"
	"time"

	"flexio/internal/domain"
	"flexio/internal/models"
	"flexio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipListActiveOrdersByStartDate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMembershipRepository(db)
	ctx := context.Background()
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &models.Membership{GymID: 1, UserID: 10, StartDate: jan.AddDate(0, 2, 0), Active: true}))
	require.NoError(t, repo.Create(ctx, &models.Membership{GymID: 1, UserID: 11, StartDate: jan, Active: true}))
	require.NoError(t, repo.Create(ctx, &models.Membership{GymID: 1, UserID: 12, StartDate: jan, Active: true}))
	lapsed := &models.Membership{GymID: 1, UserID: 13, StartDate: jan, Active: true}
	require.NoError(t, repo.Create(ctx, lapsed))
	require.NoError(t, db.Model(lapsed).Update("active", false).Error)
	require.NoError(t, repo.Create(ctx, &models.Membership{GymID: 2, UserID: 14, StartDate: jan, Active: true}))

	list, err := repo.ListActiveByGym(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uint{11, 12, 10}, []uint{list[0].UserID, list[1].UserID, list[2].UserID})

	_, err = repo.GetActive(ctx, 13, 1)
	assert.Error(t, err)
	m, err := repo.GetActive(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), m.GymID)
}

func TestSettingSetUpserts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, 1, domain.SettingRewards)
	assert.Error(t, err)

	require.NoError(t, repo.Set(ctx, 1, domain.SettingRewards, `{"day1": 10}`))
	require.NoError(t, repo.Set(ctx, 1, domain.SettingRewards, `{"day1": 20}`))
	require.NoError(t, repo.Set(ctx, 2, domain.SettingRewards, `{"day1": 30}`))

	v, err := repo.Get(ctx, 1, domain.SettingRewards)
	require.NoError(t, err)
	assert.Equal(t, `{"day1": 20}`, v)

	list, err := repo.ListByGym(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestLocationListWindow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLocationRepository(db)
	ctx := context.Background()
	t0 := time.Date(2026, 10, 12, 6, 0, 0, 0, time.UTC)

	for _, m := range []int{30, 0, 10, 20, 90} {
		require.NoError(t, repo.Create(ctx, &models.LocationSample{UserID: 1, GymID: 1, RecordedAt: t0.Add(time.Duration(m) * time.Minute), WithinGeofence: true}))
	}
	require.NoError(t, repo.Create(ctx, &models.LocationSample{UserID: 2, GymID: 1, RecordedAt: t0}))

	list, err := repo.ListWindow(ctx, 1, 1, t0, t0.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].RecordedAt.Before(list[i].RecordedAt))
	}
}

func TestCheckInCreateWithReward(t *testing.T) {
	db := testutil.NewDB(t)
	users := NewUserRepository(db)
	repo := NewCheckInRepository(db)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "ana@flexio.test", domain.RoleMember)

	day1 := time.Date(2026, 10, 12, 7, 0, 0, 0, time.UTC)
	_, err := repo.CreateWithReward(ctx, &models.CheckIn{UserID: u.ID, GymID: 1, CheckedInAt: day1, StreakDay: 1, CoinsEarned: 50, Multiplier: 1}, "Day 1 check-in reward")
	require.NoError(t, err)
	c2 := &models.CheckIn{UserID: u.ID, GymID: 1, CheckedInAt: day1.AddDate(0, 0, 1), StreakDay: 2, CoinsEarned: 100, Multiplier: 1.5}
	ct, err := repo.CreateWithReward(ctx, c2, "2-day streak bonus (1.5x)")
	require.NoError(t, err)
	assert.Equal(t, int64(150), ct.BalanceAfter)
	assert.Equal(t, checkInReference(c2.ID), ct.Reference)

	last, err := repo.Last(ctx, u.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, last.StreakDay)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(150), got.CoinBalance)

	history, err := users.ListCoinTransactions(ctx, u.ID, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
