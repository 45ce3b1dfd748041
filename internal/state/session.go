package state

import (
	"context"
	"log/slog"
	"sync"

	"tradedesk/internal/api"
	"tradedesk/internal/domain"
)

// TokenStore is the persistence boundary for the bearer token — the one
// value that outlives the process.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// TokenSourceFrom adapts a TokenStore into the per-call token reader the API
// client uses. The token is read from persistence at call time so it never
// goes stale within a session.
func TokenSourceFrom(store TokenStore) api.TokenSource {
	return storeTokenSource{store: store}
}

type storeTokenSource struct {
	store TokenStore
}

func (s storeTokenSource) Token() string {
	token, err := s.store.LoadToken()
	if err != nil {
		return ""
	}
	return token
}

// Session owns the authentication lifecycle:
//
//	Anonymous -> Authenticating -> {Authenticated, TwoFactorPending}
//	TwoFactorPending -> Authenticated
//	Authenticated -> Anonymous (sign-out)
//
// A persisted token makes the session start Authenticated optimistically; an
// invalid token surfaces as a profile-fetch error, not a forced sign-out.
type Session struct {
	mu sync.RWMutex

	authenticated    bool
	twoFactorPending bool
	pendingSessionID string
	user             *domain.User
	profileFetched   bool
	loading          bool
	err              string

	client *api.Client
	tokens TokenStore
	logger *slog.Logger
}

// NewSession derives the initial state from token presence, once.
func NewSession(client *api.Client, tokens TokenStore) *Session {
	token, err := tokens.LoadToken()
	if err != nil {
		slog.Warn("failed to load persisted token", slog.Any("error", err))
	}
	return &Session{
		authenticated: token != "",
		client:        client,
		tokens:        tokens,
		logger:        slog.Default().With("module", "session"),
	}
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// TwoFactorPending reports whether a one-time code is awaited.
func (s *Session) TwoFactorPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.twoFactorPending
}

// User returns the fetched profile, or nil before the profile fetch lands.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether an authentication operation is outstanding.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last authentication error message, or "".
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *Session) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = msg
}

// SignIn authenticates with credentials. Depending on the account it lands
// in Authenticated or TwoFactorPending; failure returns to Anonymous with
// the error set.
func (s *Session) SignIn(ctx context.Context, email, password string) <-chan error {
	s.begin()
	done := make(chan error, 1)
	go func() {
		defer close(done)
		resp, err := s.client.SignIn(ctx, api.SigninRequest{Email: email, Password: password})
		if err != nil {
			s.fail(domain.ErrorMessage(err, "Login failed"))
			done <- err
			return
		}

		if resp.TwoFactorEnabled {
			// No token yet; hold the session id for the OTP round trip.
			s.mu.Lock()
			s.loading = false
			s.twoFactorPending = true
			s.pendingSessionID = resp.Session
			s.mu.Unlock()
			done <- nil
			return
		}

		done <- s.establish(ctx, resp)
	}()
	return done
}

// SignUp registers a new account; the backend issues a token immediately.
func (s *Session) SignUp(ctx context.Context, fullName, email, password string) <-chan error {
	s.begin()
	done := make(chan error, 1)
	go func() {
		defer close(done)
		resp, err := s.client.SignUp(ctx, api.SignupRequest{FullName: fullName, Email: email, Password: password})
		if err != nil {
			s.fail(domain.ErrorMessage(err, "Registration failed"))
			done <- err
			return
		}
		done <- s.establish(ctx, resp)
	}()
	return done
}

// VerifyOTP completes a pending two-factor challenge. Failure stays in
// TwoFactorPending.
func (s *Session) VerifyOTP(ctx context.Context, otp string) <-chan error {
	s.mu.RLock()
	sessionID := s.pendingSessionID
	s.mu.RUnlock()

	s.begin()
	done := make(chan error, 1)
	go func() {
		defer close(done)
		resp, err := s.client.VerifyOTP(ctx, otp, sessionID)
		if err != nil {
			s.fail(domain.ErrorMessage(err, "OTP verification failed"))
			done <- err
			return
		}
		done <- s.establish(ctx, resp)
	}()
	return done
}

// establish persists the issued token, enters Authenticated, and triggers
// the one profile fetch for this entry.
func (s *Session) establish(ctx context.Context, resp *api.AuthResponse) error {
	if err := s.tokens.SaveToken(resp.JWT); err != nil {
		s.fail(domain.ErrorMessage(err, "Failed to persist session"))
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.err = ""
	s.authenticated = true
	s.twoFactorPending = false
	s.pendingSessionID = ""
	if resp.User != nil {
		s.user = resp.User
	}
	s.mu.Unlock()

	s.logger.Info("session established")
	// Await the profile fetch so callers observe a settled session; a failure
	// surfaces through Err, not through the sign-in result.
	<-s.EnsureProfile(ctx)
	return nil
}

// EnsureProfile triggers the profile fetch exactly once per Authenticated
// entry. Called on establish and once at startup when a token was persisted.
func (s *Session) EnsureProfile(ctx context.Context) <-chan error {
	s.mu.Lock()
	if !s.authenticated || s.profileFetched {
		s.mu.Unlock()
		done := make(chan error, 1)
		done <- nil
		close(done)
		return done
	}
	s.profileFetched = true
	s.mu.Unlock()
	return s.FetchProfile(ctx)
}

// FetchProfile loads the signed-in user's display data.
func (s *Session) FetchProfile(ctx context.Context) <-chan error {
	s.begin()
	done := make(chan error, 1)
	go func() {
		defer close(done)
		user, err := s.client.Profile(ctx)
		if err != nil {
			// An invalid persisted token lands here; surfaced, not fatal.
			s.fail(domain.ErrorMessage(err, "Failed to load profile"))
			done <- err
			return
		}
		s.mu.Lock()
		s.loading = false
		s.err = ""
		s.user = user
		s.mu.Unlock()
		done <- nil
	}()
	return done
}

// SignOut removes the token from persistence and memory and resets all
// derived flags.
func (s *Session) SignOut() error {
	err := s.tokens.ClearToken()

	s.mu.Lock()
	s.authenticated = false
	s.twoFactorPending = false
	s.pendingSessionID = ""
	s.user = nil
	s.profileFetched = false
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	s.logger.Info("session ended")
	return err
}
