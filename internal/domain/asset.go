package domain

import "github.com/shopspring/decimal"

// Asset is a user's holding of one coin. Created server-side when an order
// executes; the client only reads and re-fetches it.
type Asset struct {
	ID       int64           `json:"id"`
	CoinID   string          `json:"coinId"`
	Quantity decimal.Decimal `json:"quantity"`
	BuyPrice decimal.Decimal `json:"buyPrice"` // average buy price
	User     *User           `json:"user,omitempty"`
	Coin     Coin            `json:"coin"`
}

// CurrentValue returns the holding valued at the coin's current price.
func (a *Asset) CurrentValue() decimal.Decimal {
	return a.Quantity.Mul(a.Coin.CurrentPrice)
}

// ProfitLoss returns unrealized P&L against the average buy price.
func (a *Asset) ProfitLoss() decimal.Decimal {
	cost := a.Quantity.Mul(a.BuyPrice)
	return a.CurrentValue().Sub(cost)
}

// CanSell reports whether the holding covers the requested quantity.
func (a *Asset) CanSell(quantity decimal.Decimal) bool {
	return a.Quantity.GreaterThanOrEqual(quantity)
}
