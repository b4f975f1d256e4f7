package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		txType string
		amount int64
		want   int64
	}{
		{TxRecharge, 50, 50},
		{TxRecharge, -50, 50},
		{TxMonthlyBilling, 30, -30},
		{TxMonthlyBilling, -30, -30},
		{TxDeduction, 5, -5},
		{TxRefund, 7, -7},
		{TxAdjustment, -2, -2},
	}
	for _, tt := range tests {
		got := SignedAmount(tt.txType, decimal.NewFromInt(tt.amount))
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "%s %d: got %s", tt.txType, tt.amount, got)
	}
}

func TestIsWalletTransactionType(t *testing.T) {
	assert.True(t, IsWalletTransactionType("refund"))
	assert.False(t, IsWalletTransactionType("EARNING"))
}
