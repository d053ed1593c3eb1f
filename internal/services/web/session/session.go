// Package session issues and verifies the signed tokens behind the session
// cookie.
//
// A token is an HS256 JWT whose subject is the member id and whose jti is a
// random session id. Signing out records the jti as revoked until the token
// would have expired anyway.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unkso/titan/internal/platform/timeouts"
	"github.com/unkso/titan/internal/services/web/storage"
)

// Issuer is the iss claim of every session token.
const Issuer = "titan-web"

// MinKeyLength is the minimum signing key size in bytes.
const MinKeyLength = 32

var (
	// ErrInvalid reports a malformed, forged or unknown token.
	ErrInvalid = errors.New("session is invalid")
	// ErrExpired reports a token past its expiry.
	ErrExpired = errors.New("session is expired")
	// ErrRevoked reports a signed-out token.
	ErrRevoked = errors.New("session is revoked")
)

// Config configures a Manager.
type Config struct {
	Key         []byte
	TTL         time.Duration
	Now         func() time.Time
	Revocations storage.SessionRevocations
}

// Claims are the validated contents of a session token.
type Claims struct {
	SessionID string
	UserID    int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Manager signs and verifies session tokens.
type Manager struct {
	key         []byte
	ttl         time.Duration
	now         func() time.Time
	revocations storage.SessionRevocations
}

// NewManager validates cfg. TTL defaults to timeouts.Session.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Key) < MinKeyLength {
		return nil, fmt.Errorf("session key must be at least %d bytes", MinKeyLength)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = timeouts.Session
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	key := make([]byte, len(cfg.Key))
	copy(key, cfg.Key)
	return &Manager{key: key, ttl: cfg.TTL, now: cfg.Now, revocations: cfg.Revocations}, nil
}

// Issue signs a new session token for user.
func (m *Manager) Issue(user storage.User) (string, Claims, error) {
	if user.ID <= 0 {
		return "", Claims{}, fmt.Errorf("issue session: user id is required")
	}
	now := m.now().UTC().Truncate(time.Second)
	claims := Claims{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        claims.SessionID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			NotBefore: jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		Username: user.Username,
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature, issuer, expiry and revocation.
func (m *Manager) Verify(ctx context.Context, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalid
	}
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || userID <= 0 || parsed.ID == "" {
		return Claims{}, ErrInvalid
	}
	claims := Claims{
		SessionID: parsed.ID,
		UserID:    userID,
		Username:  parsed.Username,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsSessionRevoked(ctx, claims.SessionID)
		if err != nil {
			return Claims{}, fmt.Errorf("check session revocation: %w", err)
		}
		if revoked {
			return Claims{}, ErrRevoked
		}
	}
	return claims, nil
}

// Revoke marks the session as signed out.
func (m *Manager) Revoke(ctx context.Context, claims Claims) error {
	if m.revocations == nil || claims.SessionID == "" {
		return nil
	}
	if err := m.revocations.RevokeSession(ctx, claims.SessionID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
