package billing

import (
	"fmt"

	"flexio/internal/models"
)

// Reason is the closed set of business outcomes that are not plain success.
type Reason string

const (
	ReasonNoPaidMembers       Reason = "no_paid_members"
	ReasonInsufficientBalance Reason = "insufficient_balance"
	ReasonInvalidAmount       Reason = "invalid_amount"
	ReasonAlreadyBilled       Reason = "already_billed"
	ReasonBillingInProgress   Reason = "billing_in_progress"
)

const MessageNoPaidMembers = "no paid members to bill"

// Result is returned for every billing decision; business failures carry
// Success=false and a Reason rather than an error.
type Result struct {
	Success     bool                      `json:"success"`
	Reason      Reason                    `json:"reason,omitempty"`
	Message     string                    `json:"message"`
	Snapshot    Snapshot                  `json:"snapshot"`
	Transaction *models.WalletTransaction `json:"transaction,omitempty"`
}

func InsufficientBalanceMessage(s Snapshot) string {
	return fmt.Sprintf("Insufficient wallet balance: required %s, available %s",
		s.RequiredAmount.StringFixed(2), s.WalletBalance.StringFixed(2))
}

// CollaboratorError reports a failed read or write against the data store.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return "billing: " + e.Op + ": " + e.Err.Error()
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
