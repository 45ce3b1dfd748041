package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tradedesk/internal/domain"
	"tradedesk/internal/infra"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer credential at call time. The session owns
// the token; everything else only reads it through this interface.
type TokenSource interface {
	Token() string
}

// Client is the REST client for the trading backend (Boundary Layer).
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	metrics    *infra.Metrics
}

// NewClient creates a backend API client. tokens may be nil for a client
// that only uses public endpoints.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		tokens:  tokens,
		logger:  slog.Default().With("module", "api_client"),
		metrics: infra.GlobalMetrics,
	}
}

// SetHTTPClient replaces the underlying transport (used by tests and by the
// bootstrap when a custom timeout is configured).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// do performs one JSON request/response round trip.
// authed attaches the bearer header, reading the token at call time.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBytes)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.tokens.Token()
		if token == "" {
			return domain.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordRequest(time.Since(start).Nanoseconds())
	if err != nil {
		c.metrics.RecordError()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordError()
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.RecordError()
		apiErr := decodeAPIError(resp.StatusCode, data)
		c.logger.Warn("backend rejected request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Message))
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// decodeAPIError extracts the server-supplied message from a failure body.
// The backend answers errors as {"message": "..."} (sometimes {"error": ...}).
func decodeAPIError(status int, body []byte) *domain.APIError {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &envelope)

	msg := envelope.Message
	if msg == "" {
		msg = envelope.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &domain.APIError{Status: status, Message: msg}
}
