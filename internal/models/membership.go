package models

import (
	"time"

	"gorm.io/gorm"
)

type Membership struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GymID     uint           `gorm:"not null;index:idx_membership_gym_start" json:"gym_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	StartDate time.Time      `gorm:"not null;index:idx_membership_gym_start" json:"start_date"`
	Active    bool           `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Gym  Gym  `gorm:"foreignKey:GymID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Membership) TableName() string {
	return "memberships"
}
