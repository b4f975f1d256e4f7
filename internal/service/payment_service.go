package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"flexio/internal/domain"
	"flexio/internal/models"
	"flexio/internal/repository"
	"flexio/pkg/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrOrderNotFound      = errors.New("payment order not found")
	ErrPaymentNotVerified = errors.New("payment not confirmed by provider")
)

type PaymentService struct {
	orders   *repository.PaymentRepository
	billing  *BillingService
	provider payment.Provider
	currency string
	expiry   time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewPaymentService(
	orders *repository.PaymentRepository,
	billingSvc *BillingService,
	provider payment.Provider,
	currency string,
	expiry time.Duration,
	logger *slog.Logger,
	now func() time.Time,
) *PaymentService {
	if provider == nil {
		provider = payment.NewStubProvider()
	}
	if currency == "" {
		currency = "usd"
	}
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &PaymentService{
		orders:   orders,
		billing:  billingSvc,
		provider: provider,
		currency: currency,
		expiry:   expiry,
		logger:   logger,
		now:      now,
	}
}

// CreateOrder starts a wallet top-up. Repeating an idempotency key returns
// the order already created for it.
func (s *PaymentService) CreateOrder(ctx context.Context, gymID, userID uint, amount decimal.Decimal, idempotencyKey string) (*models.PaymentOrder, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	} else if existing, err := s.orders.GetByIdempotencyKey(ctx, idempotencyKey); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resp, err := s.provider.InitiatePayment(ctx, payment.PaymentRequest{
		GymID:          gymID,
		UserID:         userID,
		Amount:         amount,
		Currency:       s.currency,
		IdempotencyKey: idempotencyKey,
		Description:    fmt.Sprintf("Flexio wallet recharge for gym %d", gymID),
		ExpiresIn:      s.expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("initiate payment: %w", err)
	}

	expires := resp.ExpiresAt.UTC()
	order := &models.PaymentOrder{
		GymID:          gymID,
		RequestedBy:    userID,
		Amount:         amount,
		Currency:       s.currency,
		Provider:       s.provider.Name(),
		ProviderRef:    resp.Reference,
		Status:         domain.PaymentPending,
		IdempotencyKey: idempotencyKey,
		CheckoutURL:    resp.CheckoutURL,
		ExpiresAt:      &expires,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm settles an order from a provider callback. Completed orders are
// returned as they are; the wallet is credited at most once per reference.
func (s *PaymentService) Confirm(ctx context.Context, reference, status string) (*models.PaymentOrder, error) {
	order, err := s.orders.GetByProviderRef(ctx, reference)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Status == domain.PaymentCompleted {
		return order, nil
	}

	if !isSuccessStatus(status) {
		order.Status = domain.PaymentFailed
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, err
		}
		s.logger.Info("payment order failed", "order_id", order.ID, "reference", reference, "status", status)
		return order, nil
	}

	ok, err := s.provider.VerifyPayment(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !ok {
		return nil, ErrPaymentNotVerified
	}

	res, err := s.billing.RechargeWallet(ctx, order.GymID, order.Amount, reference)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("recharge rejected: %s", res.Message)
	}

	completed := s.now().UTC()
	order.Status = domain.PaymentCompleted
	order.CompletedAt = &completed
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("payment order completed", "order_id", order.ID, "gym_id", order.GymID,
		"amount", order.Amount.String())
	return order, nil
}

func isSuccessStatus(status string) bool {
	switch strings.ToLower(status) {
	case "succeeded", "success", "completed", "paid":
		return true
	}
	return false
}
