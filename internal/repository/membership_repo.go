package repository

import (
	"context"

	"flexio/internal/models"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *models.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListActiveByGym returns active memberships ordered by start date, then enrollment order.
func (r *MembershipRepository) ListActiveByGym(ctx context.Context, gymID uint) ([]models.Membership, error) {
	var list []models.Membership
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND active = ?", gymID, true).
		Order("start_date ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *MembershipRepository) GetActive(ctx context.Context, userID, gymID uint) (*models.Membership, error) {
	var m models.Membership
	err := r.db.WithContext(ctx).Where("user_id = ? AND gym_id = ? AND active = ?", userID, gymID, true).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
