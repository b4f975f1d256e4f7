package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const stubPrefix = "stub_"

// StubProvider accepts every order it issued. For development and tests.
type StubProvider struct {
	now func() time.Time
}

func NewStubProvider() *StubProvider {
	return &StubProvider{now: time.Now}
}

func (s *StubProvider) Name() string { return "stub" }

func (s *StubProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return &PaymentResponse{
		Reference: stubPrefix + uuid.NewString(),
		Status:    "PENDING",
		ExpiresAt: now().Add(req.ExpiresIn),
	}, nil
}

func (s *StubProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	return strings.HasPrefix(reference, stubPrefix), nil
}
