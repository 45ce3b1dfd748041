package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

func ordersBackend(t *testing.T, rejectBuys bool) *api.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders/pay", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		if rejectBuys && req.OrderType == domain.SideBuy {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Insufficient balance"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 42, "orderType": req.OrderType, "price": 50000, "orderStatus": "SUCCESS",
			"orderItem": map[string]interface{}{
				"id": 1, "quantity": req.Quantity,
				"coin": map[string]interface{}{"id": req.CoinID},
			},
		})
	})
	mux.HandleFunc("GET /api/orders/all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "orderType": "BUY", "price": 48000, "orderStatus": "SUCCESS",
				"orderItem": map[string]interface{}{"id": 1, "quantity": 0.5,
					"coin": map[string]interface{}{"id": "bitcoin"}}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, staticToken("token-1"))
}

func TestOrders_PlaceSetsCurrent(t *testing.T) {
	s := NewOrdersSlice(ordersBackend(t, false))

	err := <-s.Place(context.Background(), api.CreateOrderRequest{
		CoinID:    "bitcoin",
		Quantity:  decimal.NewFromFloat(0.1),
		OrderType: domain.SideBuy,
	})
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	got := s.Get()
	if got.Current == nil || got.Current.ID != 42 {
		t.Fatalf("expected current order 42, got %+v", got.Current)
	}
	if !got.Current.IsBuy() {
		t.Error("expected a buy order")
	}
}

func TestOrders_RejectionKeepsState(t *testing.T) {
	s := NewOrdersSlice(ordersBackend(t, true))
	ctx := context.Background()

	if err := <-s.FetchAll(ctx, api.OrderFilter{}); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}

	err := <-s.Place(ctx, api.CreateOrderRequest{
		CoinID:    "bitcoin",
		Quantity:  decimal.NewFromInt(100),
		OrderType: domain.SideBuy,
	})
	if err == nil {
		t.Fatal("expected the order to be rejected")
	}

	got := s.Get()
	if got.Current != nil {
		t.Errorf("a rejected order must not become current, got %+v", got.Current)
	}
	if len(got.Orders) != 1 {
		t.Errorf("history must survive the rejection, got %d", len(got.Orders))
	}
	if s.Err() != "Insufficient balance" {
		t.Errorf("expected the server's message, got %q", s.Err())
	}
}

func TestOrders_FilterQuery(t *testing.T) {
	s := NewOrdersSlice(ordersBackend(t, false))

	if err := <-s.FetchAll(context.Background(), api.OrderFilter{OrderType: domain.SideBuy, AssetSymbol: "btc"}); err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if got := s.Get(); len(got.Orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(got.Orders))
	}
}

func TestOrders_ClearCurrent(t *testing.T) {
	s := NewOrdersSlice(ordersBackend(t, false))
	ctx := context.Background()

	<-s.FetchAll(ctx, api.OrderFilter{})
	<-s.Place(ctx, api.CreateOrderRequest{CoinID: "bitcoin", Quantity: decimal.NewFromInt(1), OrderType: domain.SideSell})

	s.ClearCurrent()

	got := s.Get()
	if got.Current != nil {
		t.Error("current should be cleared")
	}
	if len(got.Orders) != 1 {
		t.Error("clearing current must not touch the history")
	}
}
