package models

import "time"

// CoinTransaction records coin credits for reward history.
type CoinTransaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Amount       int64     `gorm:"not null" json:"amount"`
	BalanceAfter int64     `gorm:"not null" json:"balance_after"`
	Type         string    `gorm:"size:30;not null;index" json:"type"`
	Reference    string    `gorm:"size:128" json:"reference"` // e.g. check_in id
	Description  string    `gorm:"size:255" json:"description"`
	CreatedAt    time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
