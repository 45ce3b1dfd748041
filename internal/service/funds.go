package service

import (
	"context"
	"errors"
	"log/slog"

	"tradedesk/internal/domain"
	"tradedesk/internal/state"

	"github.com/shopspring/decimal"
)

// Funds coordinates the money-moving flows: gateway top-ups, withdrawals and
// wallet-to-wallet transfers.
type Funds struct {
	store  *state.Store
	logger *slog.Logger
}

// NewFunds creates the funds flow service.
func NewFunds(store *state.Store, logger *slog.Logger) *Funds {
	return &Funds{store: store, logger: logger}
}

// TopUp starts a gateway payment and returns the redirect URL the caller
// hands to the browser. The wallet is not credited until ConfirmTopUp.
func (f *Funds) TopUp(ctx context.Context, method string, amount decimal.Decimal) (string, error) {
	if err := <-f.store.Payment.CreateOrder(ctx, method, amount); err != nil {
		return "", err
	}
	order := f.store.Payment.Get()
	if order == nil {
		return "", errors.New("empty payment order response")
	}
	f.logger.Info("payment order created",
		slog.String("method", method),
		slog.String("amount", amount.String()),
		slog.Int64("order_id", order.OrderID))
	return order.PaymentURL, nil
}

// ConfirmTopUp credits the wallet after the gateway redirect completes, then
// refreshes the transaction history in the background.
func (f *Funds) ConfirmTopUp(ctx context.Context, orderID int64, paymentRef string) error {
	if err := <-f.store.Wallet.Deposit(ctx, orderID, paymentRef); err != nil {
		return err
	}
	f.store.Transactions.Fetch(ctx)
	return nil
}

// Withdraw requests a payout. The balance is pre-checked when the wallet is
// loaded; after the request the wallet is refreshed because the backend
// debits immediately.
func (f *Funds) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	wallet := f.store.Wallet.Get()
	if wallet == nil {
		return domain.ErrWalletNotLoaded
	}
	if !wallet.CanSpend(amount) {
		return domain.ErrInsufficientBalance
	}

	if err := <-f.store.Withdrawals.Request(ctx, amount); err != nil {
		return err
	}
	f.logger.Info("withdrawal requested", slog.String("amount", amount.String()))
	f.store.Wallet.Fetch(ctx)
	return nil
}

// Transfer moves funds to another wallet after a balance pre-check.
func (f *Funds) Transfer(ctx context.Context, walletID int64, amount decimal.Decimal) error {
	wallet := f.store.Wallet.Get()
	if wallet == nil {
		return domain.ErrWalletNotLoaded
	}
	if !wallet.CanSpend(amount) {
		return domain.ErrInsufficientBalance
	}

	if err := <-f.store.Wallet.Transfer(ctx, walletID, amount); err != nil {
		return err
	}
	f.store.Transactions.Fetch(ctx)
	return nil
}
