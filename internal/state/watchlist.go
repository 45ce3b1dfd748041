package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
)

// WatchlistSlice mirrors the user's followed-coins set. Fetch replaces the
// whole list; add and remove patch it in place, idempotent by coin id.
type WatchlistSlice struct {
	Slice[*domain.Watchlist]
	client *api.Client
}

// NewWatchlistSlice creates the watchlist slice.
func NewWatchlistSlice(client *api.Client) *WatchlistSlice {
	return &WatchlistSlice{client: client}
}

// Fetch replaces the watchlist with the server record.
func (s *WatchlistSlice) Fetch(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch watchlist",
		func(ctx context.Context) (*domain.Watchlist, error) { return s.client.Watchlist(ctx) },
		Replace[*domain.Watchlist])
}

// Add follows a coin and appends the returned market row. Adding an
// already-present id leaves the list unchanged (the backend treats it as a
// no-op and so does the patch).
func (s *WatchlistSlice) Add(ctx context.Context, coinID string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to add coin to watchlist",
		func(ctx context.Context) (*domain.Coin, error) { return s.client.AddWatchlistCoin(ctx, coinID) },
		func(cur *domain.Watchlist, coin *domain.Coin) *domain.Watchlist {
			if cur == nil || coin == nil || cur.Contains(coin.ID) {
				return cur
			}
			next := *cur
			next.Coins = append(append([]domain.Coin(nil), cur.Coins...), *coin)
			return &next
		})
}

// Remove unfollows a coin and filters it out of the list. Removing an
// absent id leaves the list unchanged.
func (s *WatchlistSlice) Remove(ctx context.Context, coinID string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to remove coin from watchlist",
		func(ctx context.Context) (string, error) {
			// The backend answers with no body; the id drives the patch.
			if err := s.client.RemoveWatchlistCoin(ctx, coinID); err != nil {
				return "", err
			}
			return coinID, nil
		},
		func(cur *domain.Watchlist, removedID string) *domain.Watchlist {
			if cur == nil {
				return cur
			}
			next := *cur
			next.Coins = make([]domain.Coin, 0, len(cur.Coins))
			for _, c := range cur.Coins {
				if c.ID != removedID {
					next.Coins = append(next.Coins, c)
				}
			}
			return &next
		})
}
