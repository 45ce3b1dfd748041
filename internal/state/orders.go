package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
)

// OrdersState holds the order history plus the order being acted on.
type OrdersState struct {
	Orders  []domain.Order
	Current *domain.Order
}

// OrdersSlice mirrors the backend's order endpoints.
type OrdersSlice struct {
	Slice[OrdersState]
	client *api.Client
}

// NewOrdersSlice creates the orders slice.
func NewOrdersSlice(client *api.Client) *OrdersSlice {
	return &OrdersSlice{client: client}
}

// Place submits a buy or sell order and sets it as current.
func (s *OrdersSlice) Place(ctx context.Context, req api.CreateOrderRequest) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to place order",
		func(ctx context.Context) (*domain.Order, error) { return s.client.PlaceOrder(ctx, req) },
		func(cur OrdersState, order *domain.Order) OrdersState {
			cur.Current = order
			return cur
		})
}

// FetchByID loads one order and sets it as current.
func (s *OrdersSlice) FetchByID(ctx context.Context, orderID int64) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch order",
		func(ctx context.Context) (*domain.Order, error) { return s.client.Order(ctx, orderID) },
		func(cur OrdersState, order *domain.Order) OrdersState {
			cur.Current = order
			return cur
		})
}

// FetchAll replaces the order history, optionally filtered.
func (s *OrdersSlice) FetchAll(ctx context.Context, filter api.OrderFilter) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch orders",
		func(ctx context.Context) ([]domain.Order, error) { return s.client.Orders(ctx, filter) },
		func(cur OrdersState, orders []domain.Order) OrdersState {
			cur.Orders = orders
			return cur
		})
}

// ClearCurrent is a local action; it does not touch the history.
func (s *OrdersSlice) ClearCurrent() {
	s.Mutate(func(cur OrdersState) OrdersState {
		cur.Current = nil
		return cur
	})
}
