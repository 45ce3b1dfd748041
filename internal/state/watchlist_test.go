package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradedesk/internal/api"
)

// watchlistBackend serves a fixed followed set; add answers with the coin's
// market row, remove answers with an empty body.
func watchlistBackend(t *testing.T) *api.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/watchlist/user", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 10, "userId": 1,
			"coins": []map[string]interface{}{
				{"id": "bitcoin", "symbol": "btc", "name": "Bitcoin"},
			},
		})
	})
	mux.HandleFunc("POST /api/watchlist/add/coin/{id}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": r.PathValue("id"), "symbol": r.PathValue("id"), "name": r.PathValue("id"),
		})
	})
	mux.HandleFunc("DELETE /api/watchlist/remove/coin/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, staticToken("token-1"))
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestWatchlist_FetchThenAdd(t *testing.T) {
	s := NewWatchlistSlice(watchlistBackend(t))
	ctx := context.Background()

	if err := <-s.Fetch(ctx); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got := s.Get(); got == nil || len(got.Coins) != 1 {
		t.Fatalf("expected 1 followed coin, got %+v", got)
	}

	if err := <-s.Add(ctx, "ethereum"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got := s.Get()
	if len(got.Coins) != 2 {
		t.Fatalf("expected 2 followed coins, got %d", len(got.Coins))
	}
	if !got.Contains("ethereum") {
		t.Error("ethereum should be followed")
	}
}

func TestWatchlist_AddDuplicateIsNoOp(t *testing.T) {
	s := NewWatchlistSlice(watchlistBackend(t))
	ctx := context.Background()

	<-s.Fetch(ctx)
	if err := <-s.Add(ctx, "bitcoin"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got := s.Get(); len(got.Coins) != 1 {
		t.Errorf("re-adding a followed coin must not grow the list, got %d", len(got.Coins))
	}
}

func TestWatchlist_Remove(t *testing.T) {
	s := NewWatchlistSlice(watchlistBackend(t))
	ctx := context.Background()

	<-s.Fetch(ctx)
	<-s.Add(ctx, "ethereum")

	if err := <-s.Remove(ctx, "bitcoin"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	got := s.Get()
	if len(got.Coins) != 1 || got.Contains("bitcoin") {
		t.Errorf("bitcoin should be gone, got %+v", got.Coins)
	}

	// Removing an absent id leaves the list unchanged.
	if err := <-s.Remove(ctx, "dogecoin"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := s.Get(); len(got.Coins) != 1 {
		t.Errorf("expected 1 followed coin, got %d", len(got.Coins))
	}
}

func TestWatchlist_ResetOnSignOut(t *testing.T) {
	s := NewWatchlistSlice(watchlistBackend(t))
	<-s.Fetch(context.Background())

	s.Reset()

	if got := s.Get(); got != nil {
		t.Errorf("expected nil watchlist after reset, got %+v", got)
	}
}
