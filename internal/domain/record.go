package domain

import "time"

// CoinRecord is the persisted snapshot of one market row, kept so a restart
// can render last-known markets before the first fetch completes.
type CoinRecord struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     string    `json:"price"`   // decimal string
	Payload   string    `json:"payload"` // full JSON of the Coin for round-trip
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting is a persisted key-value pair. The session token lives here under
// a fixed key.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
