// Package payment abstracts the external provider used to top up gym wallets.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnknownReference = errors.New("payment reference not recognised by provider")

type PaymentRequest struct {
	GymID          uint
	UserID         uint
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
	Description    string
	ExpiresIn      time.Duration
	Metadata       map[string]string
}

type PaymentResponse struct {
	Reference   string
	Status      string
	CheckoutURL string
	ExpiresAt   time.Time
}

type Provider interface {
	Name() string
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
	VerifyPayment(ctx context.Context, reference string) (bool, error)
}

// MinorUnits converts a decimal amount to the provider's smallest currency unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
