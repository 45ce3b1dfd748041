package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletSlice mirrors the single per-user wallet record. Every operation
// replaces the record with the server's answer; the client never computes a
// balance locally.
type WalletSlice struct {
	Slice[*domain.Wallet]
	client *api.Client
}

// NewWalletSlice creates the wallet slice.
func NewWalletSlice(client *api.Client) *WalletSlice {
	return &WalletSlice{client: client}
}

// Fetch replaces the wallet with the server record.
func (s *WalletSlice) Fetch(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch wallet",
		func(ctx context.Context) (*domain.Wallet, error) { return s.client.UserWallet(ctx) },
		Replace[*domain.Wallet])
}

// PayOrder settles an order from the balance and replaces the wallet.
func (s *WalletSlice) PayOrder(ctx context.Context, orderID int64) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to pay for order",
		func(ctx context.Context) (*domain.Wallet, error) { return s.client.PayOrder(ctx, orderID) },
		Replace[*domain.Wallet])
}

// Transfer moves funds to another wallet and replaces the wallet.
func (s *WalletSlice) Transfer(ctx context.Context, walletID int64, amount decimal.Decimal) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to transfer",
		func(ctx context.Context) (*domain.Wallet, error) { return s.client.Transfer(ctx, walletID, amount) },
		Replace[*domain.Wallet])
}

// Deposit credits the wallet after a completed gateway payment and replaces
// the wallet.
func (s *WalletSlice) Deposit(ctx context.Context, orderID int64, paymentRef string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to add balance",
		func(ctx context.Context) (*domain.Wallet, error) { return s.client.Deposit(ctx, orderID, paymentRef) },
		Replace[*domain.Wallet])
}
