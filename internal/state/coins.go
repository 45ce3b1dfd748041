package state

import (
	"context"
	"sync"
	"time"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// maxChartMemo bounds the fetched-key memo; when full it is reset wholesale
// rather than grown without limit.
const maxChartMemo = 256

// CoinsState holds every market-data view the screens render.
type CoinsState struct {
	Coins        []domain.Coin
	Selected     *domain.Coin
	Details      *domain.CoinDetails
	Chart        *domain.MarketChart
	TopCoins     []domain.Coin
	Trending     *api.TrendingResult
	SearchResult *api.SearchResult
}

type chartKey struct {
	CoinID string
	Days   int
}

// CoinsSlice mirrors the backend's market-data endpoints.
type CoinsSlice struct {
	Slice[CoinsState]
	client *api.Client

	chartMu       sync.Mutex
	chartFetched  map[chartKey]struct{}
	chartDebounce time.Duration
	chartTimer    *time.Timer
}

// NewCoinsSlice creates the market-data slice. chartDebounce throttles the
// chart range-switcher; zero disables debouncing.
func NewCoinsSlice(client *api.Client, chartDebounce time.Duration) *CoinsSlice {
	return &CoinsSlice{
		client:        client,
		chartFetched:  make(map[chartKey]struct{}),
		chartDebounce: chartDebounce,
	}
}

// FetchList replaces the market list with one page.
func (s *CoinsSlice) FetchList(ctx context.Context, page int) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch coins",
		func(ctx context.Context) ([]domain.Coin, error) { return s.client.Coins(ctx, page) },
		func(cur CoinsState, coins []domain.Coin) CoinsState {
			cur.Coins = coins
			return cur
		})
}

// FetchByID replaces the selected coin.
func (s *CoinsSlice) FetchByID(ctx context.Context, coinID string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch coin",
		func(ctx context.Context) (*domain.Coin, error) { return s.client.Coin(ctx, coinID) },
		func(cur CoinsState, coin *domain.Coin) CoinsState {
			cur.Selected = coin
			return cur
		})
}

// FetchDetails replaces the coin-details view.
func (s *CoinsSlice) FetchDetails(ctx context.Context, coinID string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch coin details",
		func(ctx context.Context) (*domain.CoinDetails, error) { return s.client.CoinDetails(ctx, coinID) },
		func(cur CoinsState, details *domain.CoinDetails) CoinsState {
			cur.Details = details
			return cur
		})
}

// FetchChart replaces the chart series. Each (coin, days) key is fetched at
// most once per process; repeated requests are debounced no-ops.
func (s *CoinsSlice) FetchChart(ctx context.Context, coinID string, days int) {
	key := chartKey{CoinID: coinID, Days: days}

	s.chartMu.Lock()
	defer s.chartMu.Unlock()

	if _, done := s.chartFetched[key]; done {
		return
	}

	if s.chartDebounce <= 0 {
		s.dispatchChartLocked(ctx, key)
		return
	}

	// Trailing-edge debounce: rapid range switching only fetches the last key.
	if s.chartTimer != nil {
		s.chartTimer.Stop()
	}
	s.chartTimer = time.AfterFunc(s.chartDebounce, func() {
		s.chartMu.Lock()
		defer s.chartMu.Unlock()
		if _, done := s.chartFetched[key]; done {
			return
		}
		s.dispatchChartLocked(ctx, key)
	})
}

// dispatchChartLocked marks the key fetched and dispatches. chartMu held.
func (s *CoinsSlice) dispatchChartLocked(ctx context.Context, key chartKey) {
	if len(s.chartFetched) >= maxChartMemo {
		s.chartFetched = make(map[chartKey]struct{})
	}
	s.chartFetched[key] = struct{}{}

	Dispatch(ctx, &s.Slice, "Failed to fetch chart data",
		func(ctx context.Context) (*domain.MarketChart, error) {
			return s.client.MarketChart(ctx, key.CoinID, key.Days)
		},
		func(cur CoinsState, chart *domain.MarketChart) CoinsState {
			cur.Chart = chart
			return cur
		})
}

// Search replaces the keyword search result.
func (s *CoinsSlice) Search(ctx context.Context, keyword string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Search failed",
		func(ctx context.Context) (*api.SearchResult, error) { return s.client.Search(ctx, keyword) },
		func(cur CoinsState, result *api.SearchResult) CoinsState {
			cur.SearchResult = result
			return cur
		})
}

// FetchTop50 replaces the top-coins list.
func (s *CoinsSlice) FetchTop50(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch top 50 coins",
		func(ctx context.Context) ([]domain.Coin, error) { return s.client.Top50(ctx) },
		func(cur CoinsState, coins []domain.Coin) CoinsState {
			cur.TopCoins = coins
			return cur
		})
}

// FetchTrending replaces the trending list.
func (s *CoinsSlice) FetchTrending(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch trending coins",
		func(ctx context.Context) (*api.TrendingResult, error) { return s.client.Trending(ctx) },
		func(cur CoinsState, result *api.TrendingResult) CoinsState {
			cur.Trending = result
			return cur
		})
}

// ApplyTicker patches a live price into the matching market rows without
// touching loading or err.
func (s *CoinsSlice) ApplyTicker(coinID string, price decimal.Decimal) {
	s.Mutate(func(cur CoinsState) CoinsState {
		for i := range cur.Coins {
			if cur.Coins[i].ID == coinID {
				cur.Coins[i].CurrentPrice = price
			}
		}
		if cur.Selected != nil && cur.Selected.ID == coinID {
			selected := *cur.Selected
			selected.CurrentPrice = price
			cur.Selected = &selected
		}
		return cur
	})
}
