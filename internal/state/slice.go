package state

import (
	"context"
	"sync"

	"tradedesk/internal/domain"
)

// Slice is an isolated state container for one business entity: the entity
// data, a loading flag, and the last error message. A zero Slice is ready to
// use.
type Slice[T any] struct {
	mu      sync.RWMutex
	data    T
	loading bool
	err     string // empty means no error
}

// Get returns the current data.
func (s *Slice[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Loading reports whether the most recent dispatched operation is still
// outstanding.
func (s *Slice[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the normalized message of the last failed operation, or "".
func (s *Slice[T]) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Snapshot returns data, loading and err under one lock so a render pass
// sees a consistent view.
func (s *Slice[T]) Snapshot() (T, bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.loading, s.err
}

// Set seeds the data outside the operation lifecycle (cache warm-up).
func (s *Slice[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = v
}

// Mutate applies a local, synchronous change (clear-selection actions,
// live-ticker patches). It does not touch loading or err.
func (s *Slice[T]) Mutate(apply func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = apply(s.data)
}

// Reset returns the slice to its zero state (used on sign-out).
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.data = zero
	s.loading = false
	s.err = ""
}

func (s *Slice[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Slice[T]) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = msg
}

func (s *Slice[T]) resolve(apply func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = ""
	s.data = apply(s.data)
}

// Dispatch runs op asynchronously and synchronizes its outcome into the
// slice:
//
//   - pending: loading=true, err="" — set before Dispatch returns;
//   - resolution: loading=false, data merged via merge;
//   - rejection: loading=false, err set to the normalized message, data
//     untouched (a failed refresh keeps the last good value).
//
// The returned channel resolves exactly once with the operation's outcome so
// callers can sequence dependent fetches; fire-and-forget callers may drop
// it. Overlapping dispatches to the same slice are not ordered: the slice
// reflects whichever response lands last.
func Dispatch[T, R any](ctx context.Context, s *Slice[T], fallback string, op func(context.Context) (R, error), merge func(T, R) T) <-chan error {
	s.begin()
	done := make(chan error, 1)
	go func() {
		defer close(done)
		result, err := op(ctx)
		if err != nil {
			s.fail(domain.ErrorMessage(err, fallback))
			done <- err
			return
		}
		s.resolve(func(cur T) T { return merge(cur, result) })
		done <- nil
	}()
	return done
}

// Replace is the wholesale-overwrite merge policy used by list and detail
// fetches.
func Replace[T any](_ T, next T) T {
	return next
}
