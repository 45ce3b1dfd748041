package service

import (
	"context"
	"log/slog"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
	"tradedesk/internal/state"

	"github.com/shopspring/decimal"
)

// Trader coordinates the buy/sell flow across the order, wallet and asset
// slices. Pre-checks are advisory; the server remains authoritative and its
// rejection lands in the orders slice like any other failure.
type Trader struct {
	store  *state.Store
	logger *slog.Logger
}

// NewTrader creates the trading flow service.
func NewTrader(store *state.Store, logger *slog.Logger) *Trader {
	return &Trader{store: store, logger: logger}
}

// Buy places a buy order for quantity units of the coin. When the wallet and
// a current price are already loaded, the estimated cost is pre-checked
// against the balance before any network call.
func (t *Trader) Buy(ctx context.Context, coinID string, quantity decimal.Decimal) error {
	if price, ok := t.currentPrice(coinID); ok {
		wallet := t.store.Wallet.Get()
		if wallet == nil {
			return domain.ErrWalletNotLoaded
		}
		if !wallet.CanSpend(quantity.Mul(price)) {
			return domain.ErrInsufficientBalance
		}
	}
	return t.place(ctx, api.CreateOrderRequest{
		CoinID:    coinID,
		Quantity:  quantity,
		OrderType: domain.SideBuy,
	})
}

// Sell places a sell order. When the user's position in the coin is already
// loaded, the quantity is pre-checked against the holding.
func (t *Trader) Sell(ctx context.Context, coinID string, quantity decimal.Decimal) error {
	if holding := t.holding(coinID); holding != nil && !holding.CanSell(quantity) {
		return domain.ErrInsufficientQuantity
	}
	return t.place(ctx, api.CreateOrderRequest{
		CoinID:    coinID,
		Quantity:  quantity,
		OrderType: domain.SideSell,
	})
}

// place awaits the order call, then refreshes the wallet and the position in
// the traded coin in the background.
func (t *Trader) place(ctx context.Context, req api.CreateOrderRequest) error {
	if err := <-t.store.Orders.Place(ctx, req); err != nil {
		t.logger.Warn("order rejected",
			slog.String("coin", req.CoinID),
			slog.String("side", req.OrderType),
			slog.Any("error", err))
		return err
	}

	t.logger.Info("order placed",
		slog.String("coin", req.CoinID),
		slog.String("side", req.OrderType),
		slog.String("quantity", req.Quantity.String()))

	// The order moved money and coins server-side; re-fetch both views.
	t.store.Wallet.Fetch(ctx)
	t.store.Assets.FetchByCoin(ctx, req.CoinID)
	return nil
}

// currentPrice looks the coin's live price up in the market slice.
func (t *Trader) currentPrice(coinID string) (decimal.Decimal, bool) {
	cur := t.store.Coins.Get()
	if cur.Selected != nil && cur.Selected.ID == coinID {
		return cur.Selected.CurrentPrice, true
	}
	for i := range cur.Coins {
		if cur.Coins[i].ID == coinID {
			return cur.Coins[i].CurrentPrice, true
		}
	}
	return decimal.Zero, false
}

// holding returns the loaded position in the coin, if any.
func (t *Trader) holding(coinID string) *domain.Asset {
	cur := t.store.Assets.Get()
	if cur.Selected != nil && cur.Selected.CoinID == coinID {
		return cur.Selected
	}
	for i := range cur.Assets {
		if cur.Assets[i].CoinID == coinID {
			return &cur.Assets[i]
		}
	}
	return nil
}
