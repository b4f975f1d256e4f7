package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransaction is one entry in a gym's prepaid wallet ledger.
// Amount is the magnitude; the Type decides whether it credits or debits.
type WalletTransaction struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	GymID            uint            `gorm:"not null;index" json:"gym_id"`
	Type             string          `gorm:"size:30;not null;index" json:"type"` // recharge, deduction, monthly_billing, refund, adjustment
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	BalanceBefore    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_before"`
	BalanceAfter     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`
	Description      string          `gorm:"size:255" json:"description"`
	PaymentReference string          `gorm:"size:128;index" json:"payment_reference,omitempty"`
	IdempotencyKey   *string         `gorm:"size:128;uniqueIndex" json:"-"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"created_at"`

	Gym Gym `gorm:"foreignKey:GymID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
