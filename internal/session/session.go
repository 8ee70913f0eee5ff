// Package session holds the signed-in user and the persisted session token.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lepinkainen/marquee/internal/storage"
	"github.com/lepinkainen/marquee/internal/validate"
)

// TokenKey is the storage key holding the current session.
const TokenKey = "movie_app_token"

// DefaultTTL is how long a token stays valid.
const DefaultTTL = 24 * time.Hour

// User is the signed-in profile.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

type persistedSession struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store is the session state container. It is safe for concurrent use and
// satisfies omdb.TokenSource.
type Store struct {
	kv        storage.KV
	validator CredentialValidator
	ttl       time.Duration
	now       func() time.Time

	mu    sync.RWMutex
	user  *User
	token string
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a signed-out store.
func NewStore(kv storage.KV, validator CredentialValidator, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		validator: validator,
		ttl:       DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the current token, "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login validates the form, checks the credentials and starts a session.
// On any failure the current state is left as it was.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if err := validate.Login(email, password).Err(); err != nil {
		return err
	}

	user, err := s.validator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Debug("Login rejected", "email", email, "error", err)
		return err
	}
	return s.start(ctx, user)
}

// Register validates the form, creates the account and signs it in.
func (s *Store) Register(ctx context.Context, in RegisterInput) error {
	if err := validate.Register(in.Name, in.Email, in.Password, in.PhoneNumber).Err(); err != nil {
		return err
	}

	user, err := s.validator.CreateAccount(ctx, in)
	if err != nil {
		slog.Debug("Registration rejected", "email", in.Email, "error", err)
		return err
	}
	slog.Info("Registered account", "id", user.ID, "email", user.Email)
	return s.start(ctx, user)
}

func (s *Store) start(ctx context.Context, user User) error {
	sess := persistedSession{
		Token:     uuid.NewString(),
		User:      user,
		ExpiresAt: s.now().Add(s.ttl),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, TokenKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.user = &sess.User
	s.token = sess.Token
	s.mu.Unlock()
	return nil
}

// Logout forgets the session. The in-memory state is always cleared; the
// returned error reports a failure to remove the persisted token.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Restore loads a persisted session if one exists and has not expired.
// Expired or unreadable sessions are removed.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	raw, found, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}
	if !found {
		return false, nil
	}

	var sess persistedSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Token == "" {
		slog.Warn("Discarding unreadable session")
		return false, s.kv.Remove(ctx, TokenKey)
	}
	if !s.now().Before(sess.ExpiresAt) {
		slog.Info("Session expired", "email", sess.User.Email, "expired_at", sess.ExpiresAt)
		return false, s.kv.Remove(ctx, TokenKey)
	}

	s.mu.Lock()
	s.user = &sess.User
	s.token = sess.Token
	s.mu.Unlock()
	return true, nil
}
