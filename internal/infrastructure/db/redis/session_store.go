package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentassist/identity-service/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps the server-side session records in Redis. A record is
// written with the session TTL at issue time, so expired sessions disappear
// on their own; revocation deletes the record early.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Put records a live session under its id, expiring after ttl.
func (s *SessionStore) Put(ctx context.Context, sessionID, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sessionID), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Exists reports whether the session record is still live.
func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// Delete removes the session record. Deleting an absent record is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
