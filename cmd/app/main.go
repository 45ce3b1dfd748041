package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradedesk/internal/app"
	"tradedesk/internal/infra/stream"
	"tradedesk/internal/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "configuration file path")
	flag.Parse()

	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(*configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.Config
	store := bootstrap.Store

	// 3. Session Gate: restore the persisted session or sign in fresh
	if store.Session.Authenticated() {
		if err := <-store.Session.EnsureProfile(ctx); err != nil {
			slog.Warn("persisted session rejected, signing in again", slog.Any("error", err))
			store.SignOut()
		}
	}
	if !store.Session.Authenticated() {
		if cfg.Auth.Email == "" || cfg.Auth.Password == "" {
			slog.Error("❌ No session and no credentials configured")
			os.Exit(1)
		}
		if err := <-store.Session.SignIn(ctx, cfg.Auth.Email, cfg.Auth.Password); err != nil {
			slog.Error("❌ Sign-in failed", slog.String("message", store.Session.Err()))
			os.Exit(1)
		}
		if store.Session.TwoFactorPending() {
			slog.Error("❌ Account requires a one-time code; headless mode cannot answer it")
			os.Exit(1)
		}
	}
	if user := store.Session.User(); user != nil {
		slog.InfoContext(ctx, "✅ Signed in", slog.String("email", user.Email))
	}

	// 4. Initial user-data loads (concurrent; each lands in its own slice)
	store.Wallet.Fetch(ctx)
	store.Assets.FetchAll(ctx)
	store.Watchlist.Fetch(ctx)
	store.Transactions.Fetch(ctx)

	// 5. Market Sync (cache warm start + periodic refresh)
	marketSync := service.NewMarketSync(store, bootstrap.Storage, bootstrap.Icons, slog.Default(),
		time.Duration(cfg.UI.MarketRefreshSec)*time.Second, cfg.UI.MarketPage)
	marketSync.WarmStart()
	go marketSync.Run(ctx)
	slog.InfoContext(ctx, "✅ Market sync started", slog.Int("interval_sec", cfg.UI.MarketRefreshSec))

	// 6. Live Ticker Stream
	if cfg.Backend.WSURL != "" {
		coinIDs := make([]string, 0)
		for _, coin := range store.Coins.Get().Coins {
			coinIDs = append(coinIDs, coin.ID)
		}
		worker := stream.NewWorker(cfg.Backend.WSURL, coinIDs, func(tick stream.Tick) {
			store.Coins.ApplyTicker(tick.CoinID, tick.Price)
		})
		if err := worker.Connect(ctx); err != nil {
			slog.Error("Failed to start ticker stream", slog.Any("error", err))
		}
		defer worker.Disconnect()
		slog.InfoContext(ctx, "✅ Ticker stream started", slog.Int("subs", len(coinIDs)))
	}

	slog.InfoContext(ctx, "✨ TradeDesk fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
}
