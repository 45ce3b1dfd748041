package api

import (
	"context"
	"strconv"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// RequestWithdrawal creates a payout request for the given amount.
func (c *Client) RequestWithdrawal(ctx context.Context, amount decimal.Decimal) (*domain.Withdrawal, error) {
	path := "/api/withdrawal/" + amount.String()
	var w domain.Withdrawal
	if err := c.do(ctx, "POST", path, nil, nil, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}

// WithdrawalHistory fetches the user's withdrawal requests.
func (c *Client) WithdrawalHistory(ctx context.Context) ([]domain.Withdrawal, error) {
	var ws []domain.Withdrawal
	if err := c.do(ctx, "GET", "/api/withdrawal", nil, nil, &ws, true); err != nil {
		return nil, err
	}
	return ws, nil
}

// AllWithdrawals fetches every pending request (administrative view; the
// backend enforces the role).
func (c *Client) AllWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	var ws []domain.Withdrawal
	if err := c.do(ctx, "GET", "/api/withdrawal/admin/withdrawal", nil, nil, &ws, true); err != nil {
		return nil, err
	}
	return ws, nil
}

// ProceedWithdrawal approves or rejects a request and returns it in its new
// state.
func (c *Client) ProceedWithdrawal(ctx context.Context, withdrawalID int64, accept bool) (*domain.Withdrawal, error) {
	path := "/api/withdrawal/admin/withdrawal/" + strconv.FormatInt(withdrawalID, 10) +
		"/proced/" + strconv.FormatBool(accept)
	var w domain.Withdrawal
	if err := c.do(ctx, "PATCH", path, nil, nil, &w, true); err != nil {
		return nil, err
	}
	return &w, nil
}
