package api

import (
	"context"

	"tradedesk/internal/domain"
)

// Transactions fetches the user's wallet history.
func (c *Client) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.do(ctx, "GET", "/api/transaction", nil, nil, &txs, true); err != nil {
		return nil, err
	}
	return txs, nil
}
