package api

import (
	"context"
	"net/url"
	"strconv"

	"tradedesk/internal/domain"
)

// SearchHit is one row of a keyword search result.
type SearchHit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int64  `json:"market_cap_rank"`
	Thumb         string `json:"thumb,omitempty"`
	Large         string `json:"large,omitempty"`
}

// SearchResult is the payload of /api/coins/search.
type SearchResult struct {
	Coins []SearchHit `json:"coins"`
}

// TrendingEntry wraps one trending coin; the upstream feed nests it under
// an "item" key.
type TrendingEntry struct {
	Item SearchHit `json:"item"`
}

// TrendingResult is the payload of /api/coins/trending.
type TrendingResult struct {
	Coins []TrendingEntry `json:"coins"`
}

// Coins fetches one page of the market list. Public endpoint.
func (c *Client) Coins(ctx context.Context, page int) ([]domain.Coin, error) {
	query := url.Values{"page": {strconv.Itoa(page)}}
	var coins []domain.Coin
	if err := c.do(ctx, "GET", "/api/coins/list", query, nil, &coins, false); err != nil {
		return nil, err
	}
	return coins, nil
}

// Coin fetches a single market row by id.
func (c *Client) Coin(ctx context.Context, coinID string) (*domain.Coin, error) {
	var coin domain.Coin
	if err := c.do(ctx, "GET", "/api/coins/"+url.PathEscape(coinID), nil, nil, &coin, false); err != nil {
		return nil, err
	}
	return &coin, nil
}

// CoinDetails fetches the richer per-coin payload.
func (c *Client) CoinDetails(ctx context.Context, coinID string) (*domain.CoinDetails, error) {
	var details domain.CoinDetails
	if err := c.do(ctx, "GET", "/api/coins/"+url.PathEscape(coinID)+"/details", nil, nil, &details, false); err != nil {
		return nil, err
	}
	return &details, nil
}

// MarketChart fetches the price series for a coin over the given day range.
func (c *Client) MarketChart(ctx context.Context, coinID string, days int) (*domain.MarketChart, error) {
	query := url.Values{"days": {strconv.Itoa(days)}}
	var chart domain.MarketChart
	if err := c.do(ctx, "GET", "/api/coins/"+url.PathEscape(coinID)+"/market-chart", query, nil, &chart, false); err != nil {
		return nil, err
	}
	return &chart, nil
}

// Search runs a keyword search over the market feed.
func (c *Client) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	query := url.Values{"keyword": {keyword}}
	var result SearchResult
	if err := c.do(ctx, "GET", "/api/coins/search", query, nil, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Top50 fetches the top coins by market cap.
func (c *Client) Top50(ctx context.Context) ([]domain.Coin, error) {
	var coins []domain.Coin
	if err := c.do(ctx, "GET", "/api/coins/top-50", nil, nil, &coins, false); err != nil {
		return nil, err
	}
	return coins, nil
}

// Trending fetches the currently trending coins.
func (c *Client) Trending(ctx context.Context) (*TrendingResult, error) {
	var result TrendingResult
	if err := c.do(ctx, "GET", "/api/coins/trending", nil, nil, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}
