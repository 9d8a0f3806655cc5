package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// SessionIssuer mints HS256 bearer tokens and keeps a server-side record per
// session so tokens stay revocable. A token validates only while both hold:
// the JWT verifies and is unexpired, and its session id is still recorded in
// the store. Revocation deletes the record; expiry is enforced by the claim
// and mirrored by the record's TTL.
type SessionIssuer struct {
	store      ports.SessionStore
	jwtSecret  []byte
	sessionTTL time.Duration
}

// sessionClaims is the JWT payload for a session token.
type sessionClaims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func NewSessionIssuer(store ports.SessionStore, jwtSecret string, sessionTTL time.Duration) *SessionIssuer {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &SessionIssuer{store: store, jwtSecret: []byte(jwtSecret), sessionTTL: sessionTTL}
}

// Issue mints a session for an authenticated account.
func (s *SessionIssuer) Issue(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now().UTC()
	expires := now.Add(s.sessionTTL)
	claims := sessionClaims{
		Username: account.Username,
		Role:     account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.store.Put(ctx, id, account.ID, s.sessionTTL); err != nil {
		return nil, err
	}

	return &domain.Session{
		Token:     token,
		ID:        id,
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		IssuedAt:  now,
		ExpiresAt: expires,
	}, nil
}

// Validate resolves a presented token to its session.
func (s *SessionIssuer) Validate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrInvalidSession
	}

	live, err := s.store.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		// Revoked, or issued before the store lost the record.
		return nil, domain.ErrInvalidSession
	}

	return &domain.Session{
		Token:     token,
		ID:        claims.ID,
		AccountID: claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke destroys the session behind the token. Idempotent; an expired or
// already-revoked token is not an error.
func (s *SessionIssuer) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Expired sessions have nothing left to revoke, but the record
			// may still linger until its TTL fires; best-effort delete.
			if claims != nil && claims.ID != "" {
				return s.store.Delete(ctx, claims.ID)
			}
			return nil
		}
		return domain.ErrInvalidSession
	}
	return s.store.Delete(ctx, claims.ID)
}

func (s *SessionIssuer) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return claims, err
	}
	if !parsed.Valid || claims.ID == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, domain.ErrInvalidSession
	}
	return claims, nil
}

// newSessionID returns 128 bits of hex-encoded randomness.
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
