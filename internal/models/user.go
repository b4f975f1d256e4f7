package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name        string         `gorm:"size:128" json:"name"`
	Role        string         `gorm:"size:20;not null;index" json:"role"` // MEMBER | OWNER | ADMIN
	CoinBalance int64          `gorm:"not null;default:0" json:"coin_balance"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
