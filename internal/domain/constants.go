package domain

import "github.com/shopspring/decimal"

const (
	RoleMember = "MEMBER"
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
)

// Wallet transaction types.
const (
	TxRecharge       = "recharge"
	TxDeduction      = "deduction"
	TxMonthlyBilling = "monthly_billing"
	TxRefund         = "refund"
	TxAdjustment     = "adjustment"
)

var WalletTransactionTypes = []string{TxRecharge, TxDeduction, TxMonthlyBilling, TxRefund, TxAdjustment}

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

const CoinStreakReward = "STREAK_REWARD"

// SettingRewards is the gym setting key holding the reward override JSON.
const SettingRewards = "reward_settings"

// SignedAmount normalizes a ledger amount: recharges credit |amount|, every other
// type debits |amount| whatever sign was stored.
func SignedAmount(txType string, amount decimal.Decimal) decimal.Decimal {
	if txType == TxRecharge {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}

func IsWalletTransactionType(s string) bool {
	for _, t := range WalletTransactionTypes {
		if t == s {
			return true
		}
	}
	return false
}
