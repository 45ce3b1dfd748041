package api

import (
	"context"

	"tradedesk/internal/domain"

	"github.com/shopspring/decimal"
)

// PaymentDetailsRequest is the upsert body for the user's bank account.
type PaymentDetailsRequest struct {
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHoldername"`
	IFSCCode          string `json:"ifscCode"`
	BankName          string `json:"bankName"`
}

// CreatePaymentOrder starts a wallet top-up through the given gateway
// (domain.MethodRazorpay or domain.MethodStripe). The response carries an
// opaque redirect URL.
func (c *Client) CreatePaymentOrder(ctx context.Context, method string, amount decimal.Decimal) (*domain.PaymentOrder, error) {
	path := "/api/payment/" + method + "/amount/" + amount.String()
	var order domain.PaymentOrder
	if err := c.do(ctx, "POST", path, nil, struct{}{}, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// PaymentDetails fetches the user's bank-account record.
func (c *Client) PaymentDetails(ctx context.Context) (*domain.PaymentDetails, error) {
	var details domain.PaymentDetails
	if err := c.do(ctx, "GET", "/api/payment/payment-details", nil, nil, &details, true); err != nil {
		return nil, err
	}
	return &details, nil
}

// SavePaymentDetails creates or updates the bank-account record (upsert).
func (c *Client) SavePaymentDetails(ctx context.Context, req PaymentDetailsRequest) (*domain.PaymentDetails, error) {
	var details domain.PaymentDetails
	if err := c.do(ctx, "POST", "/api/payment/payment-details", nil, req, &details, true); err != nil {
		return nil, err
	}
	return &details, nil
}
