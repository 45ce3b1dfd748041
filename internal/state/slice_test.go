package state

import (
	"context"
	"errors"
	"testing"

	"tradedesk/internal/domain"
)

func TestDispatch_Lifecycle(t *testing.T) {
	var s Slice[[]string]

	if s.Loading() {
		t.Fatal("zero slice should not be loading")
	}

	started := make(chan struct{})
	done := Dispatch(context.Background(), &s, "fallback",
		func(ctx context.Context) ([]string, error) {
			<-started
			return []string{"a", "b"}, nil
		},
		Replace[[]string])

	// Pending is visible before the operation resolves.
	if !s.Loading() {
		t.Error("slice should be loading while the op is outstanding")
	}
	close(started)

	if err := <-done; err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if s.Loading() {
		t.Error("slice should not be loading after resolution")
	}
	if s.Err() != "" {
		t.Errorf("err should be empty after resolution, got %q", s.Err())
	}
	if got := s.Get(); len(got) != 2 || got[0] != "a" {
		t.Errorf("unexpected data: %v", got)
	}
	if data, loading, errMsg := s.Snapshot(); len(data) != 2 || loading || errMsg != "" {
		t.Errorf("snapshot disagrees: %v %v %q", data, loading, errMsg)
	}
}

func TestDispatch_FailureKeepsLastGoodValue(t *testing.T) {
	var s Slice[[]string]
	s.Set([]string{"stale"})

	done := Dispatch(context.Background(), &s, "fallback message",
		func(ctx context.Context) ([]string, error) {
			return nil, &domain.APIError{Status: 400, Message: "Insufficient balance"}
		},
		Replace[[]string])

	if err := <-done; err == nil {
		t.Fatal("expected an error")
	}
	if s.Loading() {
		t.Error("slice should not be loading after rejection")
	}
	if s.Err() != "Insufficient balance" {
		t.Errorf("expected server message, got %q", s.Err())
	}
	if got := s.Get(); len(got) != 1 || got[0] != "stale" {
		t.Errorf("failed refresh must keep the last good value, got %v", got)
	}
}

func TestDispatch_NewOperationClearsError(t *testing.T) {
	var s Slice[int]

	<-Dispatch(context.Background(), &s, "fallback",
		func(ctx context.Context) (int, error) { return 0, errors.New("boom") },
		Replace[int])
	if s.Err() == "" {
		t.Fatal("expected an error recorded")
	}

	started := make(chan struct{})
	done := Dispatch(context.Background(), &s, "fallback",
		func(ctx context.Context) (int, error) {
			<-started
			return 7, nil
		},
		Replace[int])

	// The new pending phase wipes the stale error immediately.
	if s.Err() != "" {
		t.Errorf("pending phase should clear err, got %q", s.Err())
	}
	close(started)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Get() != 7 {
		t.Errorf("expected 7, got %d", s.Get())
	}
}

func TestSlice_MutateDoesNotTouchFlags(t *testing.T) {
	var s Slice[int]
	<-Dispatch(context.Background(), &s, "fallback",
		func(ctx context.Context) (int, error) { return 0, errors.New("boom") },
		Replace[int])

	s.Mutate(func(cur int) int { return cur + 1 })

	if s.Get() != 1 {
		t.Errorf("expected 1, got %d", s.Get())
	}
	if s.Err() == "" {
		t.Error("local mutation must not clear err")
	}
}

func TestSlice_Reset(t *testing.T) {
	var s Slice[[]string]
	s.Set([]string{"x"})
	<-Dispatch(context.Background(), &s, "fallback",
		func(ctx context.Context) ([]string, error) { return nil, errors.New("boom") },
		Replace[[]string])

	s.Reset()

	if got := s.Get(); got != nil {
		t.Errorf("expected zero data, got %v", got)
	}
	if s.Err() != "" || s.Loading() {
		t.Error("reset must clear err and loading")
	}
}
