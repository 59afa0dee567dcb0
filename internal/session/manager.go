// Package session keeps the bearer token of each browser session. The
// browser holds only a session id cookie; the token lives in the store
// under a fixed key scoped by that id. Token present means signed in.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TokenKey is the fixed key the bearer token is stored under.
const TokenKey = "token"

var (
	// ErrNoToken is returned when the session is not signed in
	ErrNoToken = errors.New("no token for session")
	// ErrInvalidSession is returned when stored data is corrupt
	ErrInvalidSession = errors.New("invalid session")
)

// Manager defines the interface for session management operations
type Manager interface {
	NewID() string
	SaveToken(ctx context.Context, sessionID, token string) error
	Token(ctx context.Context, sessionID string) (string, error)
	Clear(ctx context.Context, sessionID string) error
	SignedIn(ctx context.Context, sessionID string) (bool, error)
}

// manager implements Manager interface
type manager struct {
	store  Store
	maxAge time.Duration
	logger *slog.Logger
}

// NewManager creates a new session manager. Tokens expire after maxAge.
func NewManager(store Store, maxAge time.Duration, logger *slog.Logger) Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &manager{
		store:  store,
		maxAge: maxAge,
		logger: logger,
	}
}

func tokenKey(sessionID string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, TokenKey)
}

// NewID generates a session id for a browser without one.
func (m *manager) NewID() string {
	return uuid.New().String()
}

// SaveToken stores the token issued at sign-in or sign-up.
func (m *manager) SaveToken(ctx context.Context, sessionID, token string) error {
	if sessionID == "" || token == "" {
		return ErrInvalidSession
	}

	now := time.Now()
	data, err := json.Marshal(Credential{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(m.maxAge),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := m.store.Set(ctx, tokenKey(sessionID), string(data), m.maxAge); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Token returns the bearer token of a session, or ErrNoToken.
func (m *manager) Token(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNoToken
	}

	raw, err := m.store.Get(ctx, tokenKey(sessionID))
	if errors.Is(err, ErrKeyNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to load token: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil || cred.Token == "" {
		return "", ErrInvalidSession
	}

	if !cred.ExpiresAt.IsZero() && time.Now().After(cred.ExpiresAt) {
		if err := m.store.Delete(ctx, tokenKey(sessionID)); err != nil {
			m.logger.Warn("Failed to drop expired token", "session_id", sessionID, "error", err.Error())
		}
		return "", ErrNoToken
	}
	return cred.Token, nil
}

// Clear signs the session out.
func (m *manager) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Delete(ctx, tokenKey(sessionID))
}

// SignedIn reports whether the session holds a token.
func (m *manager) SignedIn(ctx context.Context, sessionID string) (bool, error) {
	_, err := m.Token(ctx, sessionID)
	if errors.Is(err, ErrNoToken) || errors.Is(err, ErrInvalidSession) {
		return false, nil
	}
	return err == nil, err
}
