package repository

import (
	"context"

	"flexio/internal/models"

	"gorm.io/gorm"
)

type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

// Last returns the user's most recent check-in at the gym.
func (r *CheckInRepository) Last(ctx context.Context, userID, gymID uint) (*models.CheckIn, error) {
	var c models.CheckIn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		Order("checked_in_at DESC, id DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateWithReward records the check-in and credits its coins in one transaction.
func (r *CheckInRepository) CreateWithReward(ctx context.Context, c *models.CheckIn, description string) (*models.CoinTransaction, error) {
	var coinTx *models.CoinTransaction
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		ct, err := creditCoins(tx, c.UserID, c.CoinsEarned, checkInReference(c.ID), description)
		if err != nil {
			return err
		}
		coinTx = ct
		return nil
	})
	return coinTx, err
}
