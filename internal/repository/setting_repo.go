package repository

import (
	"context"

	"flexio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, gymID uint, key string) (string, error) {
	var s models.GymSetting
	if err := r.db.WithContext(ctx).Where(&models.GymSetting{GymID: gymID, Key: key}).First(&s).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *SettingRepository) Set(ctx context.Context, gymID uint, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gym_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.GymSetting{GymID: gymID, Key: key, Value: value}).Error
}

func (r *SettingRepository) ListByGym(ctx context.Context, gymID uint) ([]models.GymSetting, error) {
	var list []models.GymSetting
	err := r.db.WithContext(ctx).Where("gym_id = ?", gymID).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&list).Error
	return list, err
}
