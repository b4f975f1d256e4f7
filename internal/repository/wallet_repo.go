package repository

import (
	"context"
	"errors"
	"time"

	"flexio/internal/domain"
	"flexio/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrDuplicateTransaction   = errors.New("wallet transaction already recorded")
	ErrUnknownTransactionType = errors.New("unknown wallet transaction type")
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// ListByGym returns the gym's ledger, oldest first.
func (r *WalletRepository) ListByGym(ctx context.Context, gymID uint) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.WithContext(ctx).Where("gym_id = ?", gymID).Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

// ListRecent returns up to limit entries, newest first.
func (r *WalletRepository) ListRecent(ctx context.Context, gymID uint, limit int) ([]models.WalletTransaction, error) {
	var list []models.WalletTransaction
	err := r.db.WithContext(ctx).Where("gym_id = ?", gymID).Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *WalletRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.WalletTransaction, error) {
	var t models.WalletTransaction
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LastBillingDate returns when the gym was last charged, or nil if never.
func (r *WalletRepository) LastBillingDate(ctx context.Context, gymID uint) (*time.Time, error) {
	var t models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND type = ?", gymID, domain.TxMonthlyBilling).
		Order("created_at DESC, id DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t.CreatedAt, nil
}

// Append records t with its magnitude as Amount and the running balances
// computed from the current ledger, inside one database transaction.
func (r *WalletRepository) Append(ctx context.Context, t *models.WalletTransaction) error {
	if !domain.IsWalletTransactionType(t.Type) {
		return ErrUnknownTransactionType
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries []models.WalletTransaction
		if err := tx.Select("amount", "type").Where("gym_id = ?", t.GymID).Find(&entries).Error; err != nil {
			return err
		}
		before := decimal.Zero
		for _, e := range entries {
			before = before.Add(domain.SignedAmount(e.Type, e.Amount))
		}
		t.Amount = t.Amount.Abs()
		t.BalanceBefore = before
		t.BalanceAfter = before.Add(domain.SignedAmount(t.Type, t.Amount))
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now().UTC()
		}
		return tx.Create(t).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTransaction
	}
	return err
}
