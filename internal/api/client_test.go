package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradedesk/internal/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 1})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("abc123"))
	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected a request id header")
	}
}

func TestClient_NoTokenFailsBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))
	_, err := c.Profile(context.Background())
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if called {
		t.Error("no request should be made without a token")
	}
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Insufficient balance"}`, "Insufficient balance"},
		{"error field", http.StatusBadRequest, `{"error":"bad input"}`, "bad input"},
		{"no body", http.StatusNotFound, ``, "Not Found"},
		{"non-json body", http.StatusInternalServerError, `boom`, "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, staticToken("t"))
			_, err := c.Profile(context.Background())

			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != tc.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tc.status)
			}
			if apiErr.Message != tc.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]interface{}{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	if _, err := c.Orders(context.Background(), OrderFilter{OrderType: "BUY", AssetSymbol: "btc"}); err != nil {
		t.Fatalf("Orders failed: %v", err)
	}
	if gotQuery != "assetSymbol=btc&order_type=BUY" {
		t.Errorf("unexpected query: %q", gotQuery)
	}
}
