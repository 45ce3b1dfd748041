package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
	"tradedesk/internal/state"

	"github.com/shopspring/decimal"
)

type memTokenStore struct {
	mu    sync.Mutex
	token string
}

func (m *memTokenStore) LoadToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokenStore) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokenStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func tradingBackend(t *testing.T) *state.Store {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders/pay", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 7, "orderType": req.OrderType, "price": 50000, "orderStatus": "SUCCESS",
			"orderItem": map[string]interface{}{"id": 1, "quantity": req.Quantity,
				"coin": map[string]interface{}{"id": req.CoinID}},
		})
	})
	mux.HandleFunc("GET /api/wallets/user/wallet", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 1, "balance": 4000, "userId": 1})
	})
	mux.HandleFunc("GET /api/asset/coin/{id}/user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 3, "coinId": r.PathValue("id"), "quantity": 0.2, "buyPrice": 50000,
			"coin": map[string]interface{}{"id": r.PathValue("id")},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, state.TokenSourceFrom(&memTokenStore{token: "t"}))
	return state.New(client, &memTokenStore{token: "t"}, state.Options{})
}

// seedMarket puts a priced coin into the market slice.
func seedMarket(store *state.Store, coinID string, price int64) {
	store.Coins.Mutate(func(cur state.CoinsState) state.CoinsState {
		cur.Coins = []domain.Coin{{ID: coinID, CurrentPrice: decimal.NewFromInt(price)}}
		return cur
	})
}

func TestTrader_BuyWalletNotLoaded(t *testing.T) {
	store := tradingBackend(t)
	seedMarket(store, "bitcoin", 50000)
	trader := NewTrader(store, slog.Default())

	err := trader.Buy(context.Background(), "bitcoin", decimal.NewFromFloat(0.1))
	if !errors.Is(err, domain.ErrWalletNotLoaded) {
		t.Fatalf("expected ErrWalletNotLoaded, got %v", err)
	}
}

func TestTrader_BuyInsufficientBalance(t *testing.T) {
	store := tradingBackend(t)
	seedMarket(store, "bitcoin", 50000)
	store.Wallet.Set(&domain.Wallet{ID: 1, Balance: decimal.NewFromInt(100)})
	trader := NewTrader(store, slog.Default())

	err := trader.Buy(context.Background(), "bitcoin", decimal.NewFromInt(1))
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if store.Orders.Get().Current != nil {
		t.Error("a failed pre-check must not place an order")
	}
}

func TestTrader_BuySuccessRefreshesWalletAndPosition(t *testing.T) {
	store := tradingBackend(t)
	seedMarket(store, "bitcoin", 50000)
	store.Wallet.Set(&domain.Wallet{ID: 1, Balance: decimal.NewFromInt(10000)})
	trader := NewTrader(store, slog.Default())

	if err := trader.Buy(context.Background(), "bitcoin", decimal.NewFromFloat(0.1)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	order := store.Orders.Get().Current
	if order == nil || order.ID != 7 {
		t.Fatalf("expected current order 7, got %+v", order)
	}

	// The wallet and position refreshes run in the background.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		wallet := store.Wallet.Get()
		pos := store.Assets.Get().Selected
		if wallet != nil && wallet.Balance.Equal(decimal.NewFromInt(4000)) && pos != nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("wallet and position were not refreshed")
}

func TestTrader_SellInsufficientQuantity(t *testing.T) {
	store := tradingBackend(t)
	store.Assets.Mutate(func(cur state.AssetsState) state.AssetsState {
		cur.Assets = []domain.Asset{{ID: 3, CoinID: "bitcoin", Quantity: decimal.NewFromFloat(0.2)}}
		return cur
	})
	trader := NewTrader(store, slog.Default())

	err := trader.Sell(context.Background(), "bitcoin", decimal.NewFromInt(1))
	if !errors.Is(err, domain.ErrInsufficientQuantity) {
		t.Fatalf("expected ErrInsufficientQuantity, got %v", err)
	}
}

func TestTrader_SellUnknownPositionDefersToServer(t *testing.T) {
	store := tradingBackend(t)
	trader := NewTrader(store, slog.Default())

	// No holding loaded: no pre-check, the server decides.
	if err := trader.Sell(context.Background(), "bitcoin", decimal.NewFromFloat(0.1)); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if order := store.Orders.Get().Current; order == nil || order.OrderType != domain.SideSell {
		t.Errorf("expected a sell order, got %+v", order)
	}
}
