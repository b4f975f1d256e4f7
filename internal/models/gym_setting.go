package models

import (
	"time"

	"gorm.io/gorm"
)

// GymSetting stores per-gym key/value settings.
type GymSetting struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GymID     uint           `gorm:"not null;uniqueIndex:idx_gym_setting_key" json:"gym_id"`
	Key       string         `gorm:"size:100;not null;uniqueIndex:idx_gym_setting_key" json:"key"`
	Value     string         `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GymSetting) TableName() string { return "gym_settings" }
