package ports

import (
	"context"
	"time"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
)

// NewUser holds the fields persisted at registration.
type NewUser struct {
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash []byte
}

// AuthRepository is the relational store behind the auth flows: users,
// sessions, and password resets. Every method is a single atomic statement
// except ConsumePasswordResetAndSetPassword, which wraps a transaction.
type AuthRepository interface {
	// CreateUser inserts a user and returns it with store-assigned fields.
	// A duplicate username or email yields domain.ErrUserExists.
	CreateUser(ctx context.Context, in NewUser) (*domain.User, error)

	// FindUserByIdentifier resolves a username OR an email address.
	// Returns domain.ErrUserNotFound when neither matches.
	FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, userID int64) error

	// CreateSession persists a refresh-token grant and returns its id.
	CreateSession(ctx context.Context, userID int64, refreshTokenHash []byte, ip, userAgent string, expiresAt time.Time) (int64, error)

	// ListActiveSessions returns every non-revoked, non-expired session
	// joined with its owner. Callers verify the presented token against
	// each stored hash; salted hashing rules out an index lookup.
	ListActiveSessions(ctx context.Context) ([]domain.ActiveSession, error)

	// FindSessionByID returns the session regardless of state, or nil
	// when no such row exists.
	FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error)

	// RevokeSession sets revoked_at for the user's session. Idempotent:
	// revoking an already-revoked or absent session is not an error.
	RevokeSession(ctx context.Context, sessionID, userID int64) error

	// CreatePasswordReset persists a recovery grant and returns its id.
	CreatePasswordReset(ctx context.Context, userID int64, tokenHash []byte, expiresAt time.Time) (int64, error)

	// GetPasswordReset loads the reset/owner projection, or nil when the
	// id is unknown.
	GetPasswordReset(ctx context.Context, resetID int64) (*domain.PasswordResetView, error)

	// ConsumePasswordResetAndSetPassword updates the user's password hash
	// and marks the reset used inside one transaction; a failure of either
	// statement rolls back both.
	ConsumePasswordResetAndSetPassword(ctx context.Context, resetID, userID int64, newPasswordHash []byte) error
}
