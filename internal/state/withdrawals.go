package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// WithdrawalsSlice mirrors the payout requests: the user's own history and
// the administrative queue share one list.
type WithdrawalsSlice struct {
	Slice[[]domain.Withdrawal]
	client *api.Client
}

// NewWithdrawalsSlice creates the withdrawals slice.
func NewWithdrawalsSlice(client *api.Client) *WithdrawalsSlice {
	return &WithdrawalsSlice{client: client}
}

// Request creates a payout request and prepends it to the list.
func (s *WithdrawalsSlice) Request(ctx context.Context, amount decimal.Decimal) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to request withdrawal",
		func(ctx context.Context) (*domain.Withdrawal, error) { return s.client.RequestWithdrawal(ctx, amount) },
		func(cur []domain.Withdrawal, w *domain.Withdrawal) []domain.Withdrawal {
			return append([]domain.Withdrawal{*w}, cur...)
		})
}

// FetchHistory replaces the list with the user's own requests.
func (s *WithdrawalsSlice) FetchHistory(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch withdrawals",
		func(ctx context.Context) ([]domain.Withdrawal, error) { return s.client.WithdrawalHistory(ctx) },
		Replace[[]domain.Withdrawal])
}

// FetchAllAdmin replaces the list with every user's requests.
func (s *WithdrawalsSlice) FetchAllAdmin(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch withdrawal requests",
		func(ctx context.Context) ([]domain.Withdrawal, error) { return s.client.AllWithdrawals(ctx) },
		Replace[[]domain.Withdrawal])
}

// Proceed approves or rejects a request and patches the matching element.
func (s *WithdrawalsSlice) Proceed(ctx context.Context, withdrawalID int64, accept bool) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to process withdrawal",
		func(ctx context.Context) (*domain.Withdrawal, error) {
			return s.client.ProceedWithdrawal(ctx, withdrawalID, accept)
		},
		func(cur []domain.Withdrawal, updated *domain.Withdrawal) []domain.Withdrawal {
			next := make([]domain.Withdrawal, len(cur))
			for i, w := range cur {
				if w.ID == updated.ID {
					next[i] = *updated
				} else {
					next[i] = w
				}
			}
			return next
		})
}
