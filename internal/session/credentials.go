package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/storage"
)

// AccountsKey is the storage key holding registered accounts.
const AccountsKey = "movie_app_accounts"

// Seeded demo account.
const (
	MockUserID       = "1"
	MockUserName     = "Test User"
	MockUserEmail    = "test@example.com"
	MockUserPhone    = "1234567890"
	MockUserPassword = "Password123"
)

// Messages for rejected credentials.
const (
	InvalidCredentialsMessage = "Invalid email or password. Please try again."
	RegistrationFailedMessage = "Registration failed. Please try again."
	DuplicateEmailMessage     = "An account with this email already exists."
)

// CredentialValidator checks and creates accounts.
// Rejections are returned as *errors.AuthError.
type CredentialValidator interface {
	Authenticate(ctx context.Context, email, password string) (User, error)
	CreateAccount(ctx context.Context, in RegisterInput) (User, error)
}

type account struct {
	User
	PasswordHash string `json:"passwordHash"`
}

// LocalValidator is the local mocked credential store: the demo user plus
// any accounts registered on this machine, stored as bcrypt hashes.
type LocalValidator struct {
	kv   storage.KV
	cost int

	mu   sync.Mutex
	mock account
}

// ValidatorOption configures a LocalValidator.
type ValidatorOption func(*LocalValidator)

// WithBcryptCost overrides the bcrypt work factor.
func WithBcryptCost(cost int) ValidatorOption {
	return func(v *LocalValidator) {
		v.cost = cost
	}
}

// NewLocalValidator creates a validator that keeps registered accounts in kv.
func NewLocalValidator(kv storage.KV, opts ...ValidatorOption) (*LocalValidator, error) {
	v := &LocalValidator{kv: kv, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(v)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(MockUserPassword), v.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	v.mock = account{
		User: User{
			ID:          MockUserID,
			Name:        MockUserName,
			Email:       MockUserEmail,
			PhoneNumber: MockUserPhone,
		},
		PasswordHash: string(hash),
	}
	return v, nil
}

// Authenticate returns the account's user when email and password match.
func (v *LocalValidator) Authenticate(ctx context.Context, email, password string) (User, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	accounts, err := v.loadLocked(ctx)
	if err != nil {
		return User{}, err
	}

	email = normalizeEmail(email)
	for _, acc := range accounts {
		if normalizeEmail(acc.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
			break
		}
		return acc.User, nil
	}
	return User{}, errors.NewAuthError(InvalidCredentialsMessage)
}

// CreateAccount stores a new account. Emails are unique, case-insensitively.
func (v *LocalValidator) CreateAccount(ctx context.Context, in RegisterInput) (User, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	accounts, err := v.loadLocked(ctx)
	if err != nil {
		return User{}, err
	}

	email := normalizeEmail(in.Email)
	for _, acc := range accounts {
		if normalizeEmail(acc.Email) == email {
			return User{}, errors.NewAuthError(DuplicateEmailMessage)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), v.cost)
	if err != nil {
		return User{}, errors.NewAuthError(RegistrationFailedMessage)
	}

	acc := account{
		User: User{
			ID:          uuid.NewString(),
			Name:        strings.TrimSpace(in.Name),
			Email:       email,
			PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		},
		PasswordHash: string(hash),
	}

	// accounts[0] is the demo user and is never persisted.
	stored := append(accounts[1:], acc)
	data, err := json.Marshal(stored)
	if err != nil {
		return User{}, fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := v.kv.Set(ctx, AccountsKey, string(data)); err != nil {
		return User{}, fmt.Errorf("failed to save account: %w", err)
	}
	return acc.User, nil
}

// loadLocked returns the demo account followed by the stored ones.
func (v *LocalValidator) loadLocked(ctx context.Context) ([]account, error) {
	accounts := []account{v.mock}

	raw, found, err := v.kv.Get(ctx, AccountsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	if !found || raw == "" {
		return accounts, nil
	}

	var stored []account
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return append(accounts, stored...), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
