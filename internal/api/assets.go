package api

import (
	"context"
	"net/url"
	"strconv"

	"tradedesk/internal/domain"
)

// Assets fetches all of the user's holdings.
func (c *Client) Assets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := c.do(ctx, "GET", "/api/asset", nil, nil, &assets, true); err != nil {
		return nil, err
	}
	return assets, nil
}

// Asset fetches one holding by id.
func (c *Client) Asset(ctx context.Context, assetID int64) (*domain.Asset, error) {
	path := "/api/asset/" + strconv.FormatInt(assetID, 10)
	var asset domain.Asset
	if err := c.do(ctx, "GET", path, nil, nil, &asset, true); err != nil {
		return nil, err
	}
	return &asset, nil
}

// AssetByCoin fetches the user's holding for one coin.
func (c *Client) AssetByCoin(ctx context.Context, coinID string) (*domain.Asset, error) {
	path := "/api/asset/coin/" + url.PathEscape(coinID) + "/user"
	var asset domain.Asset
	if err := c.do(ctx, "GET", path, nil, nil, &asset, true); err != nil {
		return nil, err
	}
	return &asset, nil
}
