package models

import "time"

type CheckIn struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_checkin_user_gym" json:"user_id"`
	GymID           uint      `gorm:"not null;index:idx_checkin_user_gym" json:"gym_id"`
	CheckedInAt     time.Time `gorm:"not null;index" json:"checked_in_at"`
	StreakDay       int       `gorm:"not null" json:"streak_day"`
	CoinsEarned     int64     `gorm:"not null" json:"coins_earned"`
	Multiplier      float64   `gorm:"not null" json:"multiplier"`
	PresenceMinutes int       `json:"presence_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}
