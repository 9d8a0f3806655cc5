package domain

import "time"

// Session is a bounded-lifetime proof of prior successful authentication.
// Its role always equals the role of the owning account (role is immutable).
// A session leaves service by expiry or revocation; neither is reversible.
type Session struct {
	Token     string    `json:"token"`
	ID        string    `json:"-"`
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
