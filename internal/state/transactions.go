package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
)

// TransactionsSlice mirrors the read-only wallet history.
type TransactionsSlice struct {
	Slice[[]domain.Transaction]
	client *api.Client
}

// NewTransactionsSlice creates the transactions slice.
func NewTransactionsSlice(client *api.Client) *TransactionsSlice {
	return &TransactionsSlice{client: client}
}

// Fetch replaces the history list. An empty history is a valid success.
func (s *TransactionsSlice) Fetch(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch transactions",
		func(ctx context.Context) ([]domain.Transaction, error) { return s.client.Transactions(ctx) },
		Replace[[]domain.Transaction])
}
