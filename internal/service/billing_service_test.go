package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"flexio/internal/billing"
	"flexio/internal/domain"
	"flexio/internal/lock"
	"flexio/internal/logging"
	"flexio/internal/models"
	"flexio/internal/repository"
	"flexio/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var octNow = time.Date(2026, 10, 1, 3, 0, 0, 0, time.UTC)

func TestProcessMonthlyBillingWithinFreeLimit(t *testing.T) {
	f := newFixture(t, octNow)
	testutil.CreateMembers(t, f.db, f.gym.ID, 5, octNow.AddDate(0, -3, 0))

	res, err := f.svc.Billing.ProcessMonthlyBilling(context.Background(), f.gym.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, billing.ReasonNoPaidMembers, res.Reason)
	assert.Equal(t, billing.MessageNoPaidMembers, res.Message)
	assert.Nil(t, res.Transaction)
	assert.Zero(t, f.ledgerCount(t))
}

func TestProcessMonthlyBillingInsufficientBalance(t *testing.T) {
	f := newFixture(t, octNow)
	testutil.CreateMembers(t, f.db, f.gym.ID, 7, octNow.AddDate(0, -3, 0))
	f.fund(t, "15")

	res, err := f.svc.Billing.ProcessMonthlyBilling(context.Background(), f.gym.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, billing.ReasonInsufficientBalance, res.Reason)
	assert.Contains(t, res.Message, "20.00")
	assert.Contains(t, res.Message, "15.00")
	assert.True(t, res.Snapshot.RequiredAmount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, int64(1), f.ledgerCount(t))
}

func TestProcessMonthlyBillingPostsCharge(t *testing.T) {
	f := newFixture(t, octNow)
	testutil.CreateMembers(t, f.db, f.gym.ID, 8, octNow.AddDate(0, -3, 0))
	f.fund(t, "100")

	res, err := f.svc.Billing.ProcessMonthlyBilling(context.Background(), f.gym.ID)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.Transaction)
	assert.Equal(t, domain.TxMonthlyBilling, res.Transaction.Type)
	assert.True(t, res.Transaction.Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "Monthly subscription billing: 3 members", res.Transaction.Description)
	assert.True(t, res.Transaction.BalanceAfter.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, "monthly_billing:1:2026-10", *res.Transaction.IdempotencyKey)

	snap, err := f.svc.Billing.ComputeSnapshot(context.Background(), f.gym.ID)
	require.NoError(t, err)
	assert.True(t, snap.WalletBalance.Equal(decimal.NewFromInt(70)))

	last, err := f.svc.Billing.LastBillingDate(context.Background(), f.gym.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(octNow))
}

func TestProcessMonthlyBillingOncePerPeriod(t *testing.T) {
	f := newFixture(t, octNow)
	testutil.CreateMembers(t, f.db, f.gym.ID, 8, octNow.AddDate(0, -3, 0))
	f.fund(t, "100")
	ctx := context.Background()

	first, err := f.svc.Billing.ProcessMonthlyBilling(ctx, f.gym.ID)
	require.NoError(t, err)
	require.True(t, first.Success)

	f.setNow(octNow.Add(48 * time.Hour))
	second, err := f.svc.Billing.ProcessMonthlyBilling(ctx, f.gym.ID)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, billing.ReasonAlreadyBilled, second.Reason)
	assert.Equal(t, int64(2), f.ledgerCount(t))

	f.setNow(octNow.AddDate(0, 1, 0))
	next, err := f.svc.Billing.ProcessMonthlyBilling(ctx, f.gym.ID)
	require.NoError(t, err)
	assert.True(t, next.Success)
	assert.True(t, next.Snapshot.WalletBalance.Equal(decimal.NewFromInt(40)))
}

func TestComputeSnapshotIsIdempotent(t *testing.T) {
	f := newFixture(t, octNow)
	testutil.CreateMembers(t, f.db, f.gym.ID, 9, octNow.AddDate(0, -1, 0))
	f.fund(t, "55.50")
	ctx := context.Background()

	a, err := f.svc.Billing.ComputeSnapshot(ctx, f.gym.ID)
	require.NoError(t, err)
	b, err := f.svc.Billing.ComputeSnapshot(ctx, f.gym.ID)
	require.NoError(t, err)

	assert.Equal(t, 9, a.TotalMembers)
	assert.Equal(t, 5, a.FreeMembers)
	assert.Equal(t, 4, a.PaidMembers)
	assert.True(t, a.RequiredAmount.Equal(decimal.NewFromInt(40)))
	assert.True(t, a.WalletBalance.Equal(decimal.RequireFromString("55.5")))
	assert.Equal(t, a.TotalMembers, b.TotalMembers)
	assert.True(t, a.WalletBalance.Equal(b.WalletBalance))
	assert.Equal(t, int64(1), f.ledgerCount(t))
}

func TestRechargeWallet(t *testing.T) {
	f := newFixture(t, octNow)
	ctx := context.Background()

	for _, amount := range []string{"0", "-5"} {
		res, err := f.svc.Billing.RechargeWallet(ctx, f.gym.ID, decimal.RequireFromString(amount), "ref")
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, billing.ReasonInvalidAmount, res.Reason)
	}
	assert.Zero(t, f.ledgerCount(t))

	res, err := f.svc.Billing.RechargeWallet(ctx, f.gym.ID, decimal.NewFromInt(40), "pi_1")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "pi_1", res.Transaction.PaymentReference)
	assert.True(t, res.Snapshot.WalletBalance.Equal(decimal.NewFromInt(40)))

	again, err := f.svc.Billing.RechargeWallet(ctx, f.gym.ID, decimal.NewFromInt(40), "pi_1")
	require.NoError(t, err)
	assert.True(t, again.Success)
	assert.Nil(t, again.Transaction)
	assert.True(t, again.Snapshot.WalletBalance.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, int64(1), f.ledgerCount(t))
}

type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	return nil, lock.ErrHeld
}

func TestProcessMonthlyBillingLockHeld(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBillingService(repository.NewWalletRepository(db), repository.NewMembershipRepository(db), BillingOptions{
		Locker: heldLocker{},
		Logger: logging.Discard(),
	})

	res, err := svc.ProcessMonthlyBilling(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, billing.ReasonBillingInProgress, res.Reason)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListByGym(ctx context.Context, gymID uint) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, gymID)
	list, _ := args.Get(0).([]models.WalletTransaction)
	return list, args.Error(1)
}

func (m *MockLedger) ListRecent(ctx context.Context, gymID uint, limit int) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, gymID, limit)
	list, _ := args.Get(0).([]models.WalletTransaction)
	return list, args.Error(1)
}

func (m *MockLedger) GetByIdempotencyKey(ctx context.Context, key string) (*models.WalletTransaction, error) {
	args := m.Called(ctx, key)
	t, _ := args.Get(0).(*models.WalletTransaction)
	return t, args.Error(1)
}

func (m *MockLedger) LastBillingDate(ctx context.Context, gymID uint) (*time.Time, error) {
	args := m.Called(ctx, gymID)
	t, _ := args.Get(0).(*time.Time)
	return t, args.Error(1)
}

func (m *MockLedger) Append(ctx context.Context, t *models.WalletTransaction) error {
	return m.Called(ctx, t).Error(0)
}

type MockMembers struct {
	mock.Mock
}

func (m *MockMembers) ListActiveByGym(ctx context.Context, gymID uint) ([]models.Membership, error) {
	args := m.Called(ctx, gymID)
	list, _ := args.Get(0).([]models.Membership)
	return list, args.Error(1)
}

func roster(n int) []models.Membership {
	out := make([]models.Membership, n)
	for i := range out {
		out[i] = models.Membership{StartDate: octNow.AddDate(0, 0, -i)}
	}
	return out
}

func TestBillingServiceCollaboratorFailures(t *testing.T) {
	storeErr := errors.New("connection refused")
	funded := []models.WalletTransaction{{Type: domain.TxRecharge, Amount: decimal.NewFromInt(500)}}

	tests := []struct {
		name  string
		setup func(*MockLedger, *MockMembers)
		op    string
	}{
		{
			name: "ledger read",
			setup: func(l *MockLedger, m *MockMembers) {
				l.On("ListByGym", mock.Anything, uint(3)).Return(nil, storeErr)
			},
			op: "list wallet transactions",
		},
		{
			name: "membership read",
			setup: func(l *MockLedger, m *MockMembers) {
				l.On("ListByGym", mock.Anything, uint(3)).Return(funded, nil)
				m.On("ListActiveByGym", mock.Anything, uint(3)).Return(nil, storeErr)
			},
			op: "list memberships",
		},
		{
			name: "append",
			setup: func(l *MockLedger, m *MockMembers) {
				l.On("ListByGym", mock.Anything, uint(3)).Return(funded, nil)
				m.On("ListActiveByGym", mock.Anything, uint(3)).Return(roster(8), nil)
				l.On("GetByIdempotencyKey", mock.Anything, "monthly_billing:3:2026-10").Return(nil, gorm.ErrRecordNotFound)
				l.On("Append", mock.Anything, mock.AnythingOfType("*models.WalletTransaction")).Return(storeErr)
			},
			op: "append billing transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, members := new(MockLedger), new(MockMembers)
			tt.setup(ledger, members)
			svc := NewBillingService(ledger, members, BillingOptions{
				Logger: logging.Discard(),
				Now:    func() time.Time { return octNow },
			})

			res, err := svc.ProcessMonthlyBilling(context.Background(), 3)
			assert.Nil(t, res)
			var ce *billing.CollaboratorError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.op, ce.Op)
			assert.ErrorIs(t, err, storeErr)
			ledger.AssertExpectations(t)
			members.AssertExpectations(t)
		})
	}
}

func TestProcessMonthlyBillingDuplicateRaceIsAlreadyBilled(t *testing.T) {
	ledger, members := new(MockLedger), new(MockMembers)
	ledger.On("ListByGym", mock.Anything, uint(3)).Return([]models.WalletTransaction{{Type: domain.TxRecharge, Amount: decimal.NewFromInt(500)}}, nil)
	members.On("ListActiveByGym", mock.Anything, uint(3)).Return(roster(6), nil)
	ledger.On("GetByIdempotencyKey", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	ledger.On("Append", mock.Anything, mock.Anything).Return(repository.ErrDuplicateTransaction)

	svc := NewBillingService(ledger, members, BillingOptions{Logger: logging.Discard(), Now: func() time.Time { return octNow }})
	res, err := svc.ProcessMonthlyBilling(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, billing.ReasonAlreadyBilled, res.Reason)
}
