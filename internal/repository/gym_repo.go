package repository

import (
	"context"

	"flexio/internal/models"

	"gorm.io/gorm"
)

type GymRepository struct {
	db *gorm.DB
}

func NewGymRepository(db *gorm.DB) *GymRepository {
	return &GymRepository{db: db}
}

func (r *GymRepository) Create(ctx context.Context, g *models.Gym) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GymRepository) GetByID(ctx context.Context, id uint) (*models.Gym, error) {
	var g models.Gym
	err := r.db.WithContext(ctx).First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GymRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Gym{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}
