package api

import (
	"context"
	"net/url"
	"strconv"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the body of POST /api/orders/pay.
type CreateOrderRequest struct {
	CoinID    string          `json:"coinId"`
	Quantity  decimal.Decimal `json:"quantity"`
	OrderType string          `json:"orderType"` // domain.SideBuy or domain.SideSell
}

// OrderFilter narrows the order history query. Zero value means no filter.
type OrderFilter struct {
	OrderType   string
	AssetSymbol string
}

// PlaceOrder submits a buy or sell order for immediate execution.
func (c *Client) PlaceOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "POST", "/api/orders/pay", nil, req, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, orderID int64) (*domain.Order, error) {
	path := "/api/orders/" + strconv.FormatInt(orderID, 10)
	var order domain.Order
	if err := c.do(ctx, "GET", path, nil, nil, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders fetches the user's order history, optionally filtered.
func (c *Client) Orders(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	query := url.Values{}
	if filter.OrderType != "" {
		query.Set("order_type", filter.OrderType)
	}
	if filter.AssetSymbol != "" {
		query.Set("assetSymbol", filter.AssetSymbol)
	}
	var orders []domain.Order
	if err := c.do(ctx, "GET", "/api/orders/all", query, nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}
