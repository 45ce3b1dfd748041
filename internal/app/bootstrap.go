package app

import (
	"log/slog"
	"net/http"
	"time"

	"tradedesk/internal/api"
	"tradedesk/internal/infra"
	"tradedesk/internal/infra/storage"
	"tradedesk/internal/state"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
	Icons   *infra.IconCache
	Client  *api.Client
	Store   *state.Store
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, DB, client, store)
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping TradeDesk...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Storage (DB)
	store, err := storage.NewStorage("")
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("✅ Database initialized")

	// 4. Initialize Icon Cache
	icons, err := infra.NewIconCache()
	if err != nil {
		// Icons are cosmetic; run without them rather than abort
		slog.Warn("icon cache unavailable", slog.Any("error", err))
	}
	b.Icons = icons

	// 5. API Client + State Store
	b.Client = api.NewClient(cfg.Backend.BaseURL, state.TokenSourceFrom(store))
	if cfg.Backend.TimeoutSec > 0 {
		b.Client.SetHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		})
	}
	b.Store = state.New(b.Client, store, state.Options{
		ChartDebounce: time.Duration(cfg.UI.ChartDebounceMS) * time.Millisecond,
	})
	slog.Info("✅ State store ready")

	return nil
}
