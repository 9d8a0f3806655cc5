package ports

import (
	"context"
	"time"

	"github.com/rentassist/identity-service/internal/core/domain"
)

// SessionIssuer mints and validates bearer tokens for authenticated accounts.
type SessionIssuer interface {
	// Issue mints a session for the account with a fixed TTL.
	Issue(ctx context.Context, account *domain.Account) (*domain.Session, error)
	// Validate resolves a presented token to its session. Fails with
	// domain.ErrSessionExpired once the expiry has passed and with
	// domain.ErrInvalidSession when the token is unknown, malformed or revoked.
	Validate(ctx context.Context, token string) (*domain.Session, error)
	// Revoke destroys the session behind the token. Idempotent: revoking an
	// absent session is not an error.
	Revoke(ctx context.Context, token string) error
}

// SessionStore is the server-side record keeping a session revocable. A
// session id is written with the token's TTL at issue time; validation checks
// liveness; revocation deletes the record.
type SessionStore interface {
	Put(ctx context.Context, sessionID, accountID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}
