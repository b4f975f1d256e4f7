package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"flexio/internal/billing"
	"flexio/internal/domain"
	"flexio/internal/lock"
	"flexio/internal/metrics"
	"flexio/internal/models"
	"flexio/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerStore is the wallet ledger the billing service reads and appends to.
type LedgerStore interface {
	ListByGym(ctx context.Context, gymID uint) ([]models.WalletTransaction, error)
	ListRecent(ctx context.Context, gymID uint, limit int) ([]models.WalletTransaction, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.WalletTransaction, error)
	LastBillingDate(ctx context.Context, gymID uint) (*time.Time, error)
	Append(ctx context.Context, t *models.WalletTransaction) error
}

type MemberStore interface {
	ListActiveByGym(ctx context.Context, gymID uint) ([]models.Membership, error)
}

// EventPublisher receives gym activity for live feeds.
type EventPublisher interface {
	Publish(gymID uint, eventType string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(uint, string, interface{}) {}

type BillingService struct {
	ledger  LedgerStore
	members MemberStore
	locker  lock.Locker
	lockTTL time.Duration
	calc    billing.Calculator
	loc     *time.Location
	metrics *metrics.Metrics
	events  EventPublisher
	logger  *slog.Logger
	now     func() time.Time
}

type BillingOptions struct {
	Calculator billing.Calculator
	Location   *time.Location
	Locker     lock.Locker
	LockTTL    time.Duration
	Metrics    *metrics.Metrics
	Events     EventPublisher
	Logger     *slog.Logger
	Now        func() time.Time
}

func NewBillingService(ledger LedgerStore, members MemberStore, opts BillingOptions) *BillingService {
	s := &BillingService{
		ledger:  ledger,
		members: members,
		locker:  opts.Locker,
		lockTTL: opts.LockTTL,
		calc:    opts.Calculator,
		loc:     opts.Location,
		metrics: opts.Metrics,
		events:  opts.Events,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if s.calc.UnitPrice.IsZero() && s.calc.FreeLimit == 0 {
		s.calc = billing.DefaultCalculator()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.locker == nil {
		s.locker = lock.Noop{}
	}
	if s.lockTTL <= 0 {
		s.lockTTL = 30 * time.Second
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ComputeSnapshot derives the gym's billing state from the ledger and active
// memberships. It never writes.
func (s *BillingService) ComputeSnapshot(ctx context.Context, gymID uint) (billing.Snapshot, error) {
	txs, err := s.ledger.ListByGym(ctx, gymID)
	if err != nil {
		return billing.Snapshot{}, &billing.CollaboratorError{Op: "list wallet transactions", Err: err}
	}
	members, err := s.members.ListActiveByGym(ctx, gymID)
	if err != nil {
		return billing.Snapshot{}, &billing.CollaboratorError{Op: "list memberships", Err: err}
	}
	entries := make([]billing.LedgerEntry, len(txs))
	for i, t := range txs {
		entries[i] = billing.LedgerEntry{Amount: t.Amount, Type: t.Type}
	}
	starts := make([]time.Time, len(members))
	for i, m := range members {
		starts[i] = m.StartDate
	}
	return s.calc.Snapshot(gymID, entries, starts), nil
}

// ProcessMonthlyBilling charges the gym for its paid members in the current
// period. Business outcomes come back in the Result; only store failures are errors.
func (s *BillingService) ProcessMonthlyBilling(ctx context.Context, gymID uint) (*billing.Result, error) {
	res, err := s.processMonthlyBilling(ctx, gymID)
	if err == nil {
		s.events.Publish(gymID, "billing", res)
	}
	return res, err
}

func (s *BillingService) processMonthlyBilling(ctx context.Context, gymID uint) (*billing.Result, error) {
	release, err := s.locker.Acquire(ctx, fmt.Sprintf("billing:gym:%d", gymID), s.lockTTL)
	if errors.Is(err, lock.ErrHeld) {
		s.metrics.BillingRun(string(billing.ReasonBillingInProgress))
		return &billing.Result{
			Reason:  billing.ReasonBillingInProgress,
			Message: "billing is already running for this gym",
		}, nil
	}
	if err != nil {
		return nil, &billing.CollaboratorError{Op: "acquire billing lock", Err: err}
	}
	defer release()

	snap, err := s.ComputeSnapshot(ctx, gymID)
	if err != nil {
		return nil, err
	}

	if snap.PaidMembers == 0 {
		s.metrics.BillingRun(string(billing.ReasonNoPaidMembers))
		return &billing.Result{
			Success:  true,
			Reason:   billing.ReasonNoPaidMembers,
			Message:  billing.MessageNoPaidMembers,
			Snapshot: snap,
		}, nil
	}

	now := s.now().UTC()
	period := billing.Period(now, s.loc)
	key := billing.PeriodKey(gymID, period)
	if _, err := s.ledger.GetByIdempotencyKey(ctx, key); err == nil {
		return s.alreadyBilled(snap, period), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &billing.CollaboratorError{Op: "check billing period", Err: err}
	}

	if !snap.CanCover() {
		s.metrics.BillingRun(string(billing.ReasonInsufficientBalance))
		s.logger.Warn("monthly billing declined", "gym_id", gymID,
			"required", snap.RequiredAmount.String(), "balance", snap.WalletBalance.String())
		return &billing.Result{
			Reason:   billing.ReasonInsufficientBalance,
			Message:  billing.InsufficientBalanceMessage(snap),
			Snapshot: snap,
		}, nil
	}

	tx := &models.WalletTransaction{
		GymID:          gymID,
		Type:           domain.TxMonthlyBilling,
		Amount:         snap.RequiredAmount,
		Description:    billing.BillingDescription(snap.PaidMembers),
		IdempotencyKey: &key,
		CreatedAt:      now,
	}
	if err := s.ledger.Append(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			return s.alreadyBilled(snap, period), nil
		}
		return nil, &billing.CollaboratorError{Op: "append billing transaction", Err: err}
	}

	s.metrics.BillingRun("billed")
	s.metrics.Billed(snap.RequiredAmount)
	s.logger.Info("monthly billing posted", "gym_id", gymID, "period", period,
		"paid_members", snap.PaidMembers, "amount", snap.RequiredAmount.String())

	after := snap
	after.WalletBalance = tx.BalanceAfter
	return &billing.Result{
		Success:     true,
		Message:     tx.Description,
		Snapshot:    after,
		Transaction: tx,
	}, nil
}

func (s *BillingService) alreadyBilled(snap billing.Snapshot, period string) *billing.Result {
	s.metrics.BillingRun(string(billing.ReasonAlreadyBilled))
	return &billing.Result{
		Reason:   billing.ReasonAlreadyBilled,
		Message:  fmt.Sprintf("gym already billed for %s", period),
		Snapshot: snap,
	}
}

// RechargeWallet credits the wallet once per payment reference.
func (s *BillingService) RechargeWallet(ctx context.Context, gymID uint, amount decimal.Decimal, paymentReference string) (*billing.Result, error) {
	if !amount.IsPositive() {
		return &billing.Result{
			Reason:  billing.ReasonInvalidAmount,
			Message: "recharge amount must be greater than zero",
		}, nil
	}

	tx := &models.WalletTransaction{
		GymID:            gymID,
		Type:             domain.TxRecharge,
		Amount:           amount,
		Description:      "Wallet recharge",
		PaymentReference: paymentReference,
		CreatedAt:        s.now().UTC(),
	}
	if paymentReference != "" {
		key := billing.RechargeKey(paymentReference)
		tx.IdempotencyKey = &key
	}
	err := s.ledger.Append(ctx, tx)
	switch {
	case errors.Is(err, repository.ErrDuplicateTransaction):
		s.logger.Info("recharge already posted", "gym_id", gymID, "reference", paymentReference)
		tx = nil
	case err != nil:
		return nil, &billing.CollaboratorError{Op: "append recharge", Err: err}
	default:
		s.metrics.Recharged(amount)
		s.events.Publish(gymID, "recharge", tx)
	}

	snap, err := s.ComputeSnapshot(ctx, gymID)
	if err != nil {
		return nil, err
	}
	return &billing.Result{
		Success:     true,
		Message:     "wallet recharged",
		Snapshot:    snap,
		Transaction: tx,
	}, nil
}

func (s *BillingService) LastBillingDate(ctx context.Context, gymID uint) (*time.Time, error) {
	t, err := s.ledger.LastBillingDate(ctx, gymID)
	if err != nil {
		return nil, &billing.CollaboratorError{Op: "last billing date", Err: err}
	}
	return t, nil
}

// ListTransactions returns the most recent ledger entries, newest first.
func (s *BillingService) ListTransactions(ctx context.Context, gymID uint, limit int) ([]models.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ledger.ListRecent(ctx, gymID, limit)
}
