package service

import (
	"context"
	"log/slog"
	"time"

	"tradedesk/internal/infra"
	"tradedesk/internal/infra/storage"
	"tradedesk/internal/state"
)

// MarketSync keeps the market list fresh: it seeds the coin slice from the
// local cache at startup, then refreshes the first page on an interval and
// persists each successful page back to the cache.
type MarketSync struct {
	store    *state.Store
	storage  *storage.Storage
	icons    *infra.IconCache
	logger   *slog.Logger
	interval time.Duration
	page     int
}

// NewMarketSync creates the market refresh service. icons may be nil when
// icon caching is unavailable.
func NewMarketSync(store *state.Store, st *storage.Storage, icons *infra.IconCache, logger *slog.Logger, interval time.Duration, page int) *MarketSync {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if page <= 0 {
		page = 1
	}
	return &MarketSync{
		store:    store,
		storage:  st,
		icons:    icons,
		logger:   logger,
		interval: interval,
		page:     page,
	}
}

// WarmStart seeds the coin slice with the last persisted market rows so a
// restart renders data before the first fetch completes.
func (m *MarketSync) WarmStart() {
	coins, err := m.storage.LoadCoins()
	if err != nil {
		m.logger.Warn("coin cache load failed", slog.Any("error", err))
		return
	}
	if len(coins) == 0 {
		return
	}
	m.store.Coins.Mutate(func(cur state.CoinsState) state.CoinsState {
		cur.Coins = coins
		return cur
	})
	m.logger.Info("market list seeded from cache", slog.Int("coins", len(coins)))
}

// Run refreshes the market list until the context is cancelled. The first
// refresh happens immediately.
func (m *MarketSync) Run(ctx context.Context) {
	m.refresh(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.refresh(ctx)
		}
	}
}

func (m *MarketSync) refresh(ctx context.Context) {
	if err := <-m.store.Coins.FetchList(ctx, m.page); err != nil {
		m.logger.Warn("market refresh failed", slog.Any("error", err))
		return
	}

	coins := m.store.Coins.Get().Coins
	if err := m.storage.SaveCoins(coins); err != nil {
		m.logger.Warn("coin cache save failed", slog.Any("error", err))
	}

	if m.icons != nil {
		go m.prefetchIcons(ctx)
	}
}

// prefetchIcons fills the icon cache for the current market page. Failures
// are per-coin and non-fatal.
func (m *MarketSync) prefetchIcons(ctx context.Context) {
	for _, coin := range m.store.Coins.Get().Coins {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, err := m.icons.Fetch(coin.ID, coin.Image); err != nil {
			m.logger.Debug("icon fetch failed", slog.String("coin", coin.ID), slog.Any("error", err))
		}
	}
}
