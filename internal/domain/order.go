package domain

import "github.com/shopspring/decimal"

// Order is an executed (or pending) trade as returned by the backend.
// Immutable from the client's perspective: appended to history, never edited.
type Order struct {
	ID          int64           `json:"id"`
	OrderType   string          `json:"orderType"` // "BUY", "SELL"
	Price       decimal.Decimal `json:"price"`
	Timestamp   string          `json:"timestamp"`
	OrderStatus string          `json:"orderStatus"`
	User        *User           `json:"user,omitempty"`
	OrderItem   OrderItem       `json:"orderItem"`
}

// OrderItem is the embedded order line: quantity plus a coin snapshot taken
// at execution time.
type OrderItem struct {
	ID        int64           `json:"id"`
	Quantity  decimal.Decimal `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buyprice"`
	SellPrice decimal.Decimal `json:"sellPrice"`
	Coin      Coin            `json:"coin"`
}

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	// Status vocabulary is owned by the backend; these are the values the
	// client renders specially.
	OrderStatusPending   = "PENDING"
	OrderStatusSuccess   = "SUCCESS"
	OrderStatusCancelled = "CANCELLED"
)

// Total returns the notional value of the order line.
func (o *Order) Total() decimal.Decimal {
	return o.Price.Mul(o.OrderItem.Quantity)
}

// IsBuy reports whether this order adds to a holding.
func (o *Order) IsBuy() bool {
	return o.OrderType == SideBuy
}
