package state

import (
	"time"

	"tradedesk/internal/api"
)

// Store composes the session and every entity slice over one API client.
// It is an explicit, injectable container — tests build a fresh one per case.
type Store struct {
	Session *Session

	Coins          *CoinsSlice
	Wallet         *WalletSlice
	Orders         *OrdersSlice
	Assets         *AssetsSlice
	Watchlist      *WatchlistSlice
	Withdrawals    *WithdrawalsSlice
	Transactions   *TransactionsSlice
	Payment        *PaymentSlice
	PaymentDetails *PaymentDetailsSlice

	client *api.Client
}

// Options tunes store construction.
type Options struct {
	ChartDebounce time.Duration
}

// New builds a store over the given client and token persistence.
func New(client *api.Client, tokens TokenStore, opts Options) *Store {
	return &Store{
		Session:        NewSession(client, tokens),
		Coins:          NewCoinsSlice(client, opts.ChartDebounce),
		Wallet:         NewWalletSlice(client),
		Orders:         NewOrdersSlice(client),
		Assets:         NewAssetsSlice(client),
		Watchlist:      NewWatchlistSlice(client),
		Withdrawals:    NewWithdrawalsSlice(client),
		Transactions:   NewTransactionsSlice(client),
		Payment:        NewPaymentSlice(client),
		PaymentDetails: NewPaymentDetailsSlice(client),
		client:         client,
	}
}

// Client returns the shared API client.
func (st *Store) Client() *api.Client {
	return st.client
}

// SignOut ends the session and clears every user-owned slice. Market data
// stays; it is public.
func (st *Store) SignOut() error {
	err := st.Session.SignOut()

	st.Wallet.Reset()
	st.Orders.Reset()
	st.Assets.Reset()
	st.Watchlist.Reset()
	st.Withdrawals.Reset()
	st.Transactions.Reset()
	st.Payment.Reset()
	st.PaymentDetails.Reset()

	return err
}
