package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentOrder is a wallet top-up created with an external payment provider.
type PaymentOrder struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	GymID          uint            `gorm:"not null;index" json:"gym_id"`
	RequestedBy    uint            `gorm:"not null;index" json:"requested_by"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency       string          `gorm:"size:3;default:'usd'" json:"currency"`
	Provider       string          `gorm:"size:50;not null" json:"provider"`
	ProviderRef    string          `gorm:"size:255;uniqueIndex" json:"provider_ref"`
	Status         string          `gorm:"size:20;not null;index" json:"status"` // PENDING, COMPLETED, FAILED
	IdempotencyKey string          `gorm:"size:255;uniqueIndex" json:"-"`
	CheckoutURL    string          `gorm:"size:512" json:"checkout_url,omitempty"`
	ExpiresAt      *time.Time      `json:"expires_at"`
	CompletedAt    *time.Time      `json:"completed_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
