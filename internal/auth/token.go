package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoToken      = errors.New("no access token configured")
	ErrTokenExpired = errors.New("access token expired")
)

// expiryBuffer treats tokens this close to expiry as already expired.
const expiryBuffer = 30 * time.Second

// Token is a bearer access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be sent.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.Set(nil)
}

// TokenManager supplies the bearer token for each request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager serves a token obtained elsewhere, e.g. an API key
// from configuration. It never refreshes.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a manager for accessToken. A zero expiresAt
// means the token does not expire.
func NewStaticTokenManager(accessToken string, expiresAt time.Time) *StaticTokenManager {
	store := NewTokenStore()
	if accessToken != "" {
		store.Set(&Token{AccessToken: accessToken, ExpiresAt: expiresAt})
	}

	return &StaticTokenManager{store: store}
}

// GetToken returns the token or an error when it is missing or expired.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil {
		return "", ErrNoToken
	}

	if !token.Valid() {
		return "", ErrTokenExpired
	}

	return token.AccessToken, nil
}

// SetToken replaces the served token.
func (m *StaticTokenManager) SetToken(accessToken string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: accessToken, ExpiresAt: expiresAt})
}
