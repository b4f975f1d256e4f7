// Package billing computes a gym's monthly subscription charge from its wallet
// ledger and membership roster.
package billing

import (
	"fmt"
	"sort"
	"time"

	"flexio/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultFreeLimit = 5
	DefaultUnitPrice = 10
)

// LedgerEntry is the part of a wallet transaction the balance depends on.
type LedgerEntry struct {
	Amount decimal.Decimal
	Type   string
}

// Snapshot is the derived billing state of one gym.
type Snapshot struct {
	GymID          uint            `json:"gym_id"`
	TotalMembers   int             `json:"total_members"`
	FreeMembers    int             `json:"free_members"`
	PaidMembers    int             `json:"paid_members"`
	WalletBalance  decimal.Decimal `json:"wallet_balance"`
	RequiredAmount decimal.Decimal `json:"required_amount"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	FreeLimit      int             `json:"free_limit"`
}

// CanCover reports whether the wallet holds at least the required amount.
func (s Snapshot) CanCover() bool {
	return s.WalletBalance.GreaterThanOrEqual(s.RequiredAmount)
}

type Calculator struct {
	UnitPrice decimal.Decimal
	FreeLimit int
}

func NewCalculator(unitPrice decimal.Decimal, freeLimit int) Calculator {
	if freeLimit < 0 {
		freeLimit = 0
	}
	return Calculator{UnitPrice: unitPrice, FreeLimit: freeLimit}
}

// DefaultCalculator bills 10 per member beyond the first 5.
func DefaultCalculator() Calculator {
	return NewCalculator(decimal.NewFromInt(DefaultUnitPrice), DefaultFreeLimit)
}

// WalletBalance sums the ledger with sign normalized by transaction type.
func WalletBalance(entries []LedgerEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(domain.SignedAmount(e.Type, e.Amount))
	}
	return balance
}

// Split returns the free and paid member counts for a roster of size total.
func (c Calculator) Split(total int) (free, paid int) {
	if total < 0 {
		total = 0
	}
	free = min(total, c.FreeLimit)
	paid = max(0, total-c.FreeLimit)
	return free, paid
}

// OrderByEnrollment sorts membership start dates ascending, keeping insertion
// order for equal dates. Only the aggregate counts are billed today; the order
// is what a per-member free/paid tag would follow.
func OrderByEnrollment(startDates []time.Time) []time.Time {
	out := make([]time.Time, len(startDates))
	copy(out, startDates)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Snapshot derives the billing state. It has no side effects.
func (c Calculator) Snapshot(gymID uint, entries []LedgerEntry, startDates []time.Time) Snapshot {
	ordered := OrderByEnrollment(startDates)
	free, paid := c.Split(len(ordered))
	return Snapshot{
		GymID:          gymID,
		TotalMembers:   len(ordered),
		FreeMembers:    free,
		PaidMembers:    paid,
		WalletBalance:  WalletBalance(entries),
		RequiredAmount: c.UnitPrice.Mul(decimal.NewFromInt(int64(paid))),
		UnitPrice:      c.UnitPrice,
		FreeLimit:      c.FreeLimit,
	}
}

// BillingDescription is the ledger description of a monthly charge.
func BillingDescription(paidMembers int) string {
	return fmt.Sprintf("Monthly subscription billing: %d members", paidMembers)
}

// Period is the billing period label (YYYY-MM) of t in loc.
func Period(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01")
}

// PeriodKey identifies the monthly charge of one gym for one period.
func PeriodKey(gymID uint, period string) string {
	return fmt.Sprintf("%s:%d:%s", domain.TxMonthlyBilling, gymID, period)
}

// RechargeKey identifies the recharge posted for an external payment reference.
func RechargeKey(paymentReference string) string {
	return domain.TxRecharge + ":" + paymentReference
}
