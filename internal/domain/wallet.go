package domain

import "github.com/shopspring/decimal"

// Wallet is the single per-user balance record. The balance is authoritative
// on the server; the client only ever replaces it with a fresh fetch.
type Wallet struct {
	ID        int64           `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	UserID    int64           `json:"userId"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

// CanSpend reports whether the wallet covers the given amount.
func (w *Wallet) CanSpend(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// Transaction is one entry of the read-only wallet history. A negative
// amount is a debit.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

const (
	TxDeposit    = "DEPOSIT"
	TxWithdrawal = "WITHDRAWAL"
	TxTransfer   = "TRANSFER"
	TxBuyAsset   = "BUY_ASSET"
	TxSellAsset  = "SELL_ASSET"
)

// IsCredit reports whether the transaction added funds.
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}
