package repository

import (
	"context"
	"time"

	"flexio/internal/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, s *models.LocationSample) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// ListWindow returns the user's samples at the gym with from <= recorded_at <= to, oldest first.
func (r *LocationRepository) ListWindow(ctx context.Context, userID, gymID uint, from, to time.Time) ([]models.LocationSample, error) {
	var list []models.LocationSample
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND gym_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, gymID, from, to).
		Order("recorded_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
