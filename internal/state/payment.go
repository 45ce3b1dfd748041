package state

import (
	"context"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// PaymentSlice mirrors the latest top-up order; its payment URL is the
// opaque redirect target the caller hands to the browser.
type PaymentSlice struct {
	Slice[*domain.PaymentOrder]
	client *api.Client
}

// NewPaymentSlice creates the payment slice.
func NewPaymentSlice(client *api.Client) *PaymentSlice {
	return &PaymentSlice{client: client}
}

// CreateOrder starts a top-up through the given gateway and replaces the
// response record.
func (s *PaymentSlice) CreateOrder(ctx context.Context, method string, amount decimal.Decimal) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to create payment order",
		func(ctx context.Context) (*domain.PaymentOrder, error) {
			return s.client.CreatePaymentOrder(ctx, method, amount)
		},
		Replace[*domain.PaymentOrder])
}

// PaymentDetailsSlice mirrors the user's single bank-account record.
type PaymentDetailsSlice struct {
	Slice[*domain.PaymentDetails]
	client *api.Client
}

// NewPaymentDetailsSlice creates the payment-details slice.
func NewPaymentDetailsSlice(client *api.Client) *PaymentDetailsSlice {
	return &PaymentDetailsSlice{client: client}
}

// Fetch replaces the bank-account record.
func (s *PaymentDetailsSlice) Fetch(ctx context.Context) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to fetch payment details",
		func(ctx context.Context) (*domain.PaymentDetails, error) { return s.client.PaymentDetails(ctx) },
		Replace[*domain.PaymentDetails])
}

// Save creates or updates the record; the backend upserts and answers with
// the stored row.
func (s *PaymentDetailsSlice) Save(ctx context.Context, req api.PaymentDetailsRequest) <-chan error {
	return Dispatch(ctx, &s.Slice, "Failed to save payment details",
		func(ctx context.Context) (*domain.PaymentDetails, error) { return s.client.SavePaymentDetails(ctx, req) },
		Replace[*domain.PaymentDetails])
}
