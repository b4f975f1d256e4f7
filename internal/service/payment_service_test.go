package service

import (
	"context"
	"testing"

	"flexio/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	f := newFixture(t, octNow)
	ctx := context.Background()

	_, err := f.svc.Payments.CreateOrder(ctx, f.gym.ID, f.owner.ID, decimal.Zero, "k0")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	order, err := f.svc.Payments.CreateOrder(ctx, f.gym.ID, f.owner.ID, decimal.NewFromInt(60), "k1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, order.Status)
	assert.Equal(t, "stub", order.Provider)
	assert.NotEmpty(t, order.ProviderRef)

	again, err := f.svc.Payments.CreateOrder(ctx, f.gym.ID, f.owner.ID, decimal.NewFromInt(60), "k1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, again.ID)
	assert.Equal(t, order.ProviderRef, again.ProviderRef)
}

func TestConfirmOrder(t *testing.T) {
	f := newFixture(t, octNow)
	ctx := context.Background()

	_, err := f.svc.Payments.Confirm(ctx, "stub_missing", "succeeded")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	order, err := f.svc.Payments.CreateOrder(ctx, f.gym.ID, f.owner.ID, decimal.RequireFromString("60.25"), "")
	require.NoError(t, err)

	done, err := f.svc.Payments.Confirm(ctx, order.ProviderRef, "succeeded")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = f.svc.Payments.Confirm(ctx, order.ProviderRef, "succeeded")
	require.NoError(t, err)

	snap, err := f.svc.Billing.ComputeSnapshot(ctx, f.gym.ID)
	require.NoError(t, err)
	assert.True(t, snap.WalletBalance.Equal(decimal.RequireFromString("60.25")))
	assert.Equal(t, int64(1), f.ledgerCount(t))
}

func TestConfirmFailedOrder(t *testing.T) {
	f := newFixture(t, octNow)
	ctx := context.Background()

	order, err := f.svc.Payments.CreateOrder(ctx, f.gym.ID, f.owner.ID, decimal.NewFromInt(20), "")
	require.NoError(t, err)

	failed, err := f.svc.Payments.Confirm(ctx, order.ProviderRef, "failed")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, failed.Status)
	assert.Zero(t, f.ledgerCount(t))
}
