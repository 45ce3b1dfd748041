package api

import (
	"context"
	"net/url"

	"tradedesk/internal/domain"
)

// Watchlist fetches the user's watchlist.
func (c *Client) Watchlist(ctx context.Context) (*domain.Watchlist, error) {
	var list domain.Watchlist
	if err := c.do(ctx, "GET", "/api/watchlist/user", nil, nil, &list, true); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddWatchlistCoin follows a coin and returns its market row. Adding an
// already-followed coin is a backend no-op.
func (c *Client) AddWatchlistCoin(ctx context.Context, coinID string) (*domain.Coin, error) {
	path := "/api/watchlist/add/coin/" + url.PathEscape(coinID)
	var coin domain.Coin
	if err := c.do(ctx, "POST", path, nil, nil, &coin, true); err != nil {
		return nil, err
	}
	return &coin, nil
}

// RemoveWatchlistCoin unfollows a coin.
func (c *Client) RemoveWatchlistCoin(ctx context.Context, coinID string) error {
	path := "/api/watchlist/remove/coin/" + url.PathEscape(coinID)
	return c.do(ctx, "DELETE", path, nil, nil, nil, true)
}
