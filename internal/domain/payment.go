package domain

import "github.com/shopspring/decimal"

// Payment gateway identifiers accepted by the backend.
const (
	MethodRazorpay = "RAZORPAY"
	MethodStripe   = "STRIPE"
)

// PaymentOrder is the backend's answer to a top-up request. The payment URL
// is an opaque redirect target owned by the gateway.
type PaymentOrder struct {
	OrderID       int64           `json:"orderId"`
	PaymentURL    string          `json:"payment_url"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentDetails is the user's single bank-account record. Creation and
// update share one endpoint (upsert).
type PaymentDetails struct {
	ID                int64  `json:"id"`
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHoldername"`
	IFSCCode          string `json:"ifscCode"`
	BankName          string `json:"bankName"`
	CreatedAt         string `json:"createdAt,omitempty"`
	UpdatedAt         string `json:"updatedAt,omitempty"`
}
