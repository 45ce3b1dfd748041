package domain

// Watchlist is the user's set of followed coins. Set semantics (no duplicate
// ids) are enforced by the backend; the client trusts that contract.
type Watchlist struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Coins  []Coin `json:"coins"`
}

// Contains reports whether the coin id is already followed.
func (w *Watchlist) Contains(coinID string) bool {
	for _, c := range w.Coins {
		if c.ID == coinID {
			return true
		}
	}
	return false
}
