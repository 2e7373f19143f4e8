package domain

import "time"

// Session backs a refresh token's validity window. Only the bcrypt hash of
// the token is stored; the plaintext is handed to the client exactly once.
type Session struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	RefreshTokenHash []byte     `json:"-"`
	UserAgent        string     `json:"user_agent"`
	IPAddress        string     `json:"ip_address"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
}

// Usable reports whether the session may still be exchanged for new tokens.
func (s *Session) Usable(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}

// ActiveSession is the session/user projection returned by the active-session
// scan: everything refresh rotation needs without a second lookup.
type ActiveSession struct {
	SessionID        int64
	UserID           int64
	RefreshTokenHash []byte
	Username         string
	Email            string
}

// PasswordReset is a one-time credential-recovery grant. Consumed atomically
// with the password change; never reusable afterwards.
type PasswordReset struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	TokenHash []byte     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Usable reports whether the reset may still be redeemed.
func (r *PasswordReset) Usable(now time.Time) bool {
	return r.UsedAt == nil && r.ExpiresAt.After(now)
}

// PasswordResetView joins a reset row with its owning user, the shape needed
// to validate and apply a reset in one pass.
type PasswordResetView struct {
	ResetID   int64
	UserID    int64
	Username  string
	Email     string
	IsActive  bool
	TokenHash []byte
	ExpiresAt time.Time
	UsedAt    *time.Time
}
