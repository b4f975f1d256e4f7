package repository

import (
	"context"
	"fmt"

	"flexio/internal/domain"
	"flexio/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ListCoinTransactions(ctx context.Context, userID uint, limit int) ([]models.CoinTransaction, error) {
	var list []models.CoinTransaction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Limit(limit).Find(&list).Error
	return list, err
}

func creditCoins(tx *gorm.DB, userID uint, amount int64, reference, description string) (*models.CoinTransaction, error) {
	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("coin_balance", gorm.Expr("coin_balance + ?", amount)).Error; err != nil {
		return nil, err
	}
	var u models.User
	if err := tx.Select("coin_balance").First(&u, userID).Error; err != nil {
		return nil, err
	}
	ct := &models.CoinTransaction{
		UserID:       userID,
		Amount:       amount,
		BalanceAfter: u.CoinBalance,
		Type:         domain.CoinStreakReward,
		Reference:    reference,
		Description:  description,
	}
	if err := tx.Create(ct).Error; err != nil {
		return nil, err
	}
	return ct, nil
}

func checkInReference(id uint) string {
	return fmt.Sprintf("check_in:%d", id)
}
