package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/redis"
)

var (
	// ErrNoSession means no server-side session exists for the user.
	ErrNoSession = errors.New("session: not found")
	// ErrTokenMismatch means the presented refresh token does not match the stored one.
	ErrTokenMismatch = errors.New("session: refresh token mismatch")
)

// Store is the slice of the redis client the manager needs.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// record is the JSON value stored per user. Only the refresh token hash is
// persisted, never the token itself.
type record struct {
	RefreshHash string    `json:"refresh_hash"`
	AccessID    string    `json:"access_id"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Tokens is what Generate and Rotate hand back to the caller.
type Tokens struct {
	RefreshToken string
	AccessID     string
}

// Manager keeps one active session per user in redis. Issuing a new session
// replaces the previous one, so logging in elsewhere invalidates old tokens.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Generate creates a fresh session for the user, replacing any existing one.
func (m *Manager) Generate(ctx context.Context, userID uuid.UUID) (Tokens, error) {
	return m.write(ctx, userID)
}

// Rotate validates the presented refresh token and, if it matches, issues a
// replacement session. The old refresh token is unusable afterwards.
func (m *Manager) Rotate(ctx context.Context, userID uuid.UUID, refreshToken string) (Tokens, error) {
	stored, err := m.load(ctx, userID)
	if err != nil {
		return Tokens{}, err
	}
	if stored.RefreshHash != hashToken(refreshToken) {
		return Tokens{}, ErrTokenMismatch
	}
	return m.write(ctx, userID)
}

// Revoke removes the user's session. Missing sessions are not an error.
func (m *Manager) Revoke(ctx context.Context, userID uuid.UUID) error {
	return m.store.Del(ctx, redis.SessionKey(userID.String()))
}

// HasSession reports whether the access token with the given jti belongs to
// the user's current session. Tokens from replaced sessions fail this check.
func (m *Manager) HasSession(ctx context.Context, userID uuid.UUID, accessID string) (bool, error) {
	stored, err := m.load(ctx, userID)
	if errors.Is(err, ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored.AccessID == accessID, nil
}

func (m *Manager) write(ctx context.Context, userID uuid.UUID) (Tokens, error) {
	refreshToken := uuid.NewString()
	accessID := uuid.NewString()

	raw, err := json.Marshal(record{
		RefreshHash: hashToken(refreshToken),
		AccessID:    accessID,
		IssuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return Tokens{}, fmt.Errorf("encoding session record: %w", err)
	}

	if err := m.store.Set(ctx, redis.SessionKey(userID.String()), string(raw), m.ttl); err != nil {
		return Tokens{}, fmt.Errorf("storing session: %w", err)
	}

	return Tokens{RefreshToken: refreshToken, AccessID: accessID}, nil
}

func (m *Manager) load(ctx context.Context, userID uuid.UUID) (record, error) {
	raw, err := m.store.Get(ctx, redis.SessionKey(userID.String()))
	if errors.Is(err, redis.ErrNotFound) {
		return record{}, ErrNoSession
	}
	if err != nil {
		return record{}, fmt.Errorf("loading session: %w", err)
	}

	var stored record
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return record{}, fmt.Errorf("decoding session record: %w", err)
	}
	return stored, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
