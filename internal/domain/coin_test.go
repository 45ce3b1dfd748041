package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoin_PreservesUnknownFields(t *testing.T) {
	payload := `{
		"id": "bitcoin",
		"symbol": "btc",
		"name": "Bitcoin",
		"current_price": 50000,
		"max_supply": 21000000,
		"ath": 69000,
		"roi": {"times": 2.5, "currency": "usd"},
		"sparkline_in_7d": {"price": [1, 2, 3]}
	}`

	var coin Coin
	if err := json.Unmarshal([]byte(payload), &coin); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if coin.ID != "bitcoin" {
		t.Errorf("id = %q", coin.ID)
	}
	if !coin.CurrentPrice.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("current_price = %v", coin.CurrentPrice)
	}
	if coin.MaxSupply == nil || !coin.MaxSupply.Equal(decimal.NewFromInt(21000000)) {
		t.Errorf("max_supply = %v", coin.MaxSupply)
	}
	for _, key := range []string{"ath", "roi", "sparkline_in_7d"} {
		if _, ok := coin.Extra[key]; !ok {
			t.Errorf("unknown field %q not preserved", key)
		}
	}

	out, err := json.Marshal(coin)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var roundTrip map[string]json.RawMessage
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	if string(roundTrip["ath"]) != "69000" {
		t.Errorf("ath did not round-trip: %s", roundTrip["ath"])
	}
	if _, ok := roundTrip["roi"]; !ok {
		t.Error("roi did not round-trip")
	}
}

func TestCoin_NullMaxSupply(t *testing.T) {
	var coin Coin
	if err := json.Unmarshal([]byte(`{"id":"dogecoin","max_supply":null}`), &coin); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if coin.MaxSupply != nil {
		t.Errorf("uncapped coin must have nil max_supply, got %v", coin.MaxSupply)
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(nil, "fb"); got != "" {
		t.Errorf("nil error: got %q", got)
	}
	apiErr := &APIError{Status: 400, Message: "Insufficient balance"}
	if got := ErrorMessage(apiErr, "fb"); got != "Insufficient balance" {
		t.Errorf("server message preferred: got %q", got)
	}
	bare := &APIError{Status: 500}
	if got := ErrorMessage(bare, "fb"); got != "request failed" {
		t.Errorf("got %q", got)
	}
}

func TestOrder_Total(t *testing.T) {
	o := Order{
		Price:     decimal.NewFromInt(50000),
		OrderItem: OrderItem{Quantity: decimal.NewFromFloat(0.5)},
	}
	if !o.Total().Equal(decimal.NewFromInt(25000)) {
		t.Errorf("Total = %v", o.Total())
	}
}

func TestAsset_ProfitLoss(t *testing.T) {
	a := Asset{
		Quantity: decimal.NewFromInt(2),
		BuyPrice: decimal.NewFromInt(40000),
		Coin:     Coin{CurrentPrice: decimal.NewFromInt(50000)},
	}
	if !a.CurrentValue().Equal(decimal.NewFromInt(100000)) {
		t.Errorf("CurrentValue = %v", a.CurrentValue())
	}
	if !a.ProfitLoss().Equal(decimal.NewFromInt(20000)) {
		t.Errorf("ProfitLoss = %v", a.ProfitLoss())
	}
	if a.CanSell(decimal.NewFromInt(3)) {
		t.Error("CanSell should reject more than held")
	}
}
