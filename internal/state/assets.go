package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
)

// AssetsState holds the portfolio list plus the holding being inspected.
type AssetsState struct {
	Assets   []domain.Asset
	Selected *domain.Asset
}

// AssetsSlice mirrors the backend's holding endpoints. Holdings are created
// server-side by executed orders; this slice only reads.
type AssetsSlice struct {
	Slice[AssetsState]
	client *api.Client
}

// NewAssetsSlice creates the assets slice.
func NewAssetsSlice(client *api.Client) *AssetsSlice {
	return &AssetsSlice{client: client}
}

// FetchAll replaces the portfolio list.
func (s *AssetsSlice) FetchAll(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch assets",
		func(ctx context.Context) ([]domain.Asset, error) { return s.client.Assets(ctx) },
		func(cur AssetsState, assets []domain.Asset) AssetsState {
			cur.Assets = assets
			return cur
		})
}

// FetchByID sets the selected holding.
func (s *AssetsSlice) FetchByID(ctx context.Context, assetID int64) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch asset by ID",
		func(ctx context.Context) (*domain.Asset, error) { return s.client.Asset(ctx, assetID) },
		func(cur AssetsState, asset *domain.Asset) AssetsState {
			cur.Selected = asset
			return cur
		})
}

// FetchByCoin sets the selected holding to the user's position in one coin.
func (s *AssetsSlice) FetchByCoin(ctx context.Context, coinID string) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch user asset for coin",
		func(ctx context.Context) (*domain.Asset, error) { return s.client.AssetByCoin(ctx, coinID) },
		func(cur AssetsState, asset *domain.Asset) AssetsState {
			cur.Selected = asset
			return cur
		})
}

// ClearSelected is a local action.
func (s *AssetsSlice) ClearSelected() {
	s.Mutate(func(cur AssetsState) AssetsState {
		cur.Selected = nil
		return cur
	})
}
