package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeProvider creates a PaymentIntent per order; the reference is the intent id.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider builds a provider on the given secret key. backends may be
// nil to use Stripe's production endpoints.
func NewStripeProvider(secretKey string, backends *stripe.Backends) *StripeProvider {
	return &StripeProvider{api: client.New(secretKey, backends)}
}

func (p *StripeProvider) Name() string { return "stripe" }

func (p *StripeProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(MinorUnits(req.Amount)),
		Currency:    stripe.String(currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	params.AddMetadata("gym_id", fmt.Sprint(req.GymID))
	params.AddMetadata("user_id", fmt.Sprint(req.UserID))
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return &PaymentResponse{
		Reference: pi.ID,
		Status:    string(pi.Status),
		ExpiresAt: time.Now().Add(req.ExpiresIn),
	}, nil
}

func (p *StripeProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := p.api.PaymentIntents.Get(reference, params)
	if err != nil {
		if se, ok := err.(*stripe.Error); ok && se.HTTPStatusCode == 404 {
			return false, ErrUnknownReference
		}
		return false, fmt.Errorf("stripe: get payment intent: %w", err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
