package api

import (
	"context"
	"net/url"

	"tradedesk/internal/domain"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest is the body of POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries either a bearer token or a two-factor challenge.
// When TwoFactorEnabled is set, JWT is empty and Session correlates the
// follow-up OTP verification.
type AuthResponse struct {
	JWT              string       `json:"jwt"`
	User             *domain.User `json:"user,omitempty"`
	TwoFactorEnabled bool         `json:"twoFactorAuthEnabled"`
	Session          string       `json:"session,omitempty"`
	Message          string       `json:"message,omitempty"`
}

// SignUp registers a new account. The backend issues a token immediately.
func (c *Client) SignUp(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/signup", nil, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignIn authenticates with credentials. The answer is either a token or a
// two-factor challenge marker.
func (c *Client) SignIn(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/signin", nil, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP completes a two-factor challenge against the held session id.
func (c *Client) VerifyOTP(ctx context.Context, otp, sessionID string) (*AuthResponse, error) {
	query := url.Values{"id": {sessionID}}
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/two-factor/otp/"+url.PathEscape(otp), query, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the signed-in user's display data.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "GET", "/api/users/profile", nil, nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}
