package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Coin is one market-data row as served by the backend's coin endpoints.
// The backend mirrors an upstream market feed, so the payload carries an
// open-ended set of statistics; known fields are typed strictly and anything
// unrecognized is preserved in Extra for round-trip fidelity.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Image  string `json:"image"`

	CurrentPrice       decimal.Decimal  `json:"current_price"`
	MarketCap          decimal.Decimal  `json:"market_cap"`
	MarketCapRank      int64            `json:"market_cap_rank"`
	TotalVolume        decimal.Decimal  `json:"total_volume"`
	High24h            decimal.Decimal  `json:"high_24h"`
	Low24h             decimal.Decimal  `json:"low_24h"`
	PriceChange24h     decimal.Decimal  `json:"price_change_24h"`
	PriceChangePct24h  decimal.Decimal  `json:"price_change_percentage_24h"`
	MarketCapChange24h decimal.Decimal  `json:"market_cap_change_24h"`
	MarketCapChgPct24h decimal.Decimal  `json:"market_cap_change_percentage_24h"`
	CirculatingSupply  decimal.Decimal  `json:"circulating_supply"`
	TotalSupply        decimal.Decimal  `json:"total_supply"`
	MaxSupply          *decimal.Decimal `json:"max_supply,omitempty"` // null for uncapped coins

	// Extra holds unrecognized payload fields (ath, roi, sparkline, ...).
	Extra map[string]json.RawMessage `json:"-"`
}

var coinKnownKeys = []string{
	"id", "symbol", "name", "image",
	"current_price", "market_cap", "market_cap_rank", "total_volume",
	"high_24h", "low_24h", "price_change_24h", "price_change_percentage_24h",
	"market_cap_change_24h", "market_cap_change_percentage_24h",
	"circulating_supply", "total_supply", "max_supply",
}

type coinAlias Coin

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
func (c *Coin) UnmarshalJSON(data []byte) error {
	var a coinAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, coinKnownKeys)
	if err != nil {
		return err
	}
	a.Extra = extra
	*c = Coin(a)
	return nil
}

// MarshalJSON re-emits known fields plus anything preserved in Extra.
func (c Coin) MarshalJSON() ([]byte, error) {
	return mergeExtra(coinAlias(c), c.Extra)
}

// CoinImage groups the image variants served with coin details.
type CoinImage struct {
	Thumb string `json:"thumb,omitempty"`
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// MarketStats is the nested market_data block of a coin-details payload.
type MarketStats struct {
	CurrentPrice       map[string]decimal.Decimal `json:"current_price"`
	PriceChangePct24h  decimal.Decimal            `json:"price_change_percentage_24h"`
	MarketCapChange24h decimal.Decimal            `json:"market_cap_change_24h"`
}

// CoinDetails is the richer per-coin payload behind /details.
type CoinDetails struct {
	ID         string      `json:"id"`
	Symbol     string      `json:"symbol"`
	Name       string      `json:"name"`
	Image      CoinImage   `json:"image"`
	MarketData MarketStats `json:"market_data"`

	Extra map[string]json.RawMessage `json:"-"`
}

var coinDetailsKnownKeys = []string{"id", "symbol", "name", "image", "market_data"}

type coinDetailsAlias CoinDetails

func (c *CoinDetails) UnmarshalJSON(data []byte) error {
	var a coinDetailsAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extraFields(data, coinDetailsKnownKeys)
	if err != nil {
		return err
	}
	a.Extra = extra
	*c = CoinDetails(a)
	return nil
}

func (c CoinDetails) MarshalJSON() ([]byte, error) {
	return mergeExtra(coinDetailsAlias(c), c.Extra)
}

// MarketChart is a price series for one coin over a day range.
// Each point is [unix_millis, price].
type MarketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// extraFields returns the top-level JSON fields of data not claimed by known.
func extraFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra marshals v and splices the preserved extra fields back in.
func mergeExtra(v interface{}, extra map[string]json.RawMessage) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}
