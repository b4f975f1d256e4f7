package app

import (
	"context"
	"testing"

	"flexio/config"
	"flexio/pkg/payment"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.PaymentConfig{Provider: "stub"})
	require.NoError(t, err)
	assert.IsType(t, &payment.StubProvider{}, p)

	_, err = NewProvider(config.PaymentConfig{Provider: "stripe"})
	assert.Error(t, err)

	p, err = NewProvider(config.PaymentConfig{Provider: "stripe", StripeSecretKey: "sk_test_x"})
	require.NoError(t, err)
	assert.Equal(t, "stripe", p.Name())

	_, err = NewProvider(config.PaymentConfig{Provider: "paypal"})
	assert.Error(t, err)
}

func TestNewWithSQLiteAndRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:app_test?mode=memory&cache=shared"
	cfg.Redis.Addr = mr.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Redis)
	assert.NotNil(t, a.Services.Billing)
	assert.NotNil(t, a.Hub)
}
