package api

import (
	"context"
	"net/url"
	"strconv"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

type transferRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UserWallet fetches the signed-in user's wallet record.
func (c *Client) UserWallet(ctx context.Context) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := c.do(ctx, "GET", "/api/wallets/user/wallet", nil, nil, &wallet, true); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// PayOrder settles a placed order from the wallet balance and returns the
// updated wallet.
func (c *Client) PayOrder(ctx context.Context, orderID int64) (*domain.Wallet, error) {
	path := "/api/wallets/order/" + strconv.FormatInt(orderID, 10) + "/pay"
	var wallet domain.Wallet
	if err := c.do(ctx, "PUT", path, nil, nil, &wallet, true); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Transfer moves funds to another wallet and returns the updated wallet.
func (c *Client) Transfer(ctx context.Context, walletID int64, amount decimal.Decimal) (*domain.Wallet, error) {
	path := "/api/wallets/" + strconv.FormatInt(walletID, 10) + "/transfer"
	var wallet domain.Wallet
	if err := c.do(ctx, "PUT", path, nil, transferRequest{Amount: amount}, &wallet, true); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Deposit credits the wallet after a completed gateway payment, identified
// by the payment order and the gateway's payment reference.
func (c *Client) Deposit(ctx context.Context, orderID int64, paymentRef string) (*domain.Wallet, error) {
	path := "/api/wallets/order/" + strconv.FormatInt(orderID, 10) + "/pay-order"
	query := url.Values{"payment_id": {paymentRef}}
	var wallet domain.Wallet
	if err := c.do(ctx, "POST", path, query, nil, &wallet, true); err != nil {
		return nil, err
	}
	return &wallet, nil
}
