package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Billing.UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 5, cfg.Billing.FreeLimit)
	assert.Equal(t, 200, cfg.Rewards.Day3)
	assert.Equal(t, 2*time.Minute, cfg.Geofence.MaxSampleGap)
	assert.Equal(t, 20*time.Minute, cfg.Geofence.MinimumPresence)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, time.UTC, cfg.Billing.Location)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FLEXIO_BILLING_FREE_LIMIT", "3")
	t.Setenv("FLEXIO_BILLING_UNIT_PRICE", "12.50")
	t.Setenv("FLEXIO_DATABASE_DRIVER", "sqlite")
	t.Setenv("FLEXIO_GEOFENCE_RADIUS_METERS", "150")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Billing.FreeLimit)
	assert.Equal(t, "12.5", cfg.Billing.UnitPrice.String())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 150.0, cfg.Geofence.RadiusMeters)
}

func TestLoadRejectsBadUnitPrice(t *testing.T) {
	t.Setenv("FLEXIO_BILLING_UNIT_PRICE", "ten")
	_, err := Load()
	assert.Error(t, err)
}
