package domain

import "github.com/shopspring/decimal"

// Withdrawal is one payout request. Created by the user, transitioned by an
// administrative approve/reject; the exact status vocabulary is owned by the
// backend.
type Withdrawal struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	UserID    int64           `json:"userId"`
	Date      string          `json:"date,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

const (
	WithdrawalPending  = "PENDING"
	WithdrawalApproved = "APPROVED"
	WithdrawalRejected = "REJECTED"
)

// IsSettled reports whether the request has left the pending state.
func (w *Withdrawal) IsSettled() bool {
	return w.Status != WithdrawalPending
}
