package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1250), MinorUnits(decimal.RequireFromString("12.5")))
	assert.Equal(t, int64(1), MinorUnits(decimal.RequireFromString("0.005")))
	assert.Equal(t, int64(10000), MinorUnits(decimal.NewFromInt(100)))
}

func TestStubProvider(t *testing.T) {
	p := NewStubProvider()
	resp, err := p.InitiatePayment(context.Background(), PaymentRequest{Amount: decimal.NewFromInt(50), ExpiresIn: time.Minute})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Reference, "stub_"))
	assert.Equal(t, "PENDING", resp.Status)

	ok, err := p.VerifyPayment(context.Background(), resp.Reference)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = p.VerifyPayment(context.Background(), "pi_123")
	assert.False(t, ok)
}

func newStripeTestProvider(t *testing.T, handler http.HandlerFunc) *StripeProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeProvider("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestStripeProviderInitiate(t *testing.T) {
	p := newStripeTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "2500", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "7", r.PostForm.Get("metadata[gym_id]"))
		assert.Equal(t, "order-1", r.Header.Get("Idempotency-Key"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "pi_123",
			"object": "payment_intent",
			"status": "requires_payment_method",
		})
	})

	resp, err := p.InitiatePayment(context.Background(), PaymentRequest{
		GymID:          7,
		Amount:         decimal.NewFromInt(25),
		Currency:       "USD",
		IdempotencyKey: "order-1",
		ExpiresIn:      time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", resp.Reference)
	assert.Equal(t, "requires_payment_method", resp.Status)
}

func TestStripeProviderVerify(t *testing.T) {
	p := newStripeTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		status := "processing"
		if strings.HasSuffix(r.URL.Path, "/pi_paid") {
			status = "succeeded"
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     strings.TrimPrefix(r.URL.Path, "/v1/payment_intents/"),
			"object": "payment_intent",
			"status": status,
		})
	})

	ok, err := p.VerifyPayment(context.Background(), "pi_paid")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.VerifyPayment(context.Background(), "pi_pending")
	require.NoError(t, err)
	assert.False(t, ok)
}
