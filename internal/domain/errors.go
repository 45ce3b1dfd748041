package domain

import "errors"

// APIError represents a failed backend call carrying the server-supplied
// message. The message is the only structured detail the UI layer renders.
type APIError struct {
	Status  int    // HTTP status code
	Message string // Server-supplied message, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// ErrorMessage normalizes any error into a single human-readable string.
// Preference order: server message, transport message, fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

var (
	// ErrNotAuthenticated is returned when an authenticated call is attempted without a token
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInsufficientBalance is the client-side pre-check failure before money-moving actions
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientQuantity is the client-side pre-check failure before selling
	ErrInsufficientQuantity = errors.New("insufficient holding quantity")

	// ErrWalletNotLoaded is returned when a pre-check needs the wallet but it was never fetched
	ErrWalletNotLoaded = errors.New("wallet not loaded")
)
