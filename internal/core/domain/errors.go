package domain

import "errors"

// Expected, caller-recoverable failures. The API layer maps each to a fixed
// HTTP status; anything else surfaces as a generic internal error.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password"
	// so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username/email or password")

	// ErrUserExists signals a duplicate username or email at registration.
	ErrUserExists = errors.New("username or email already registered")

	// ErrAccountDisabled is returned for any operation against a
	// deactivated account.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidRefreshToken means the presented refresh token matched no
	// active session: unknown, expired, or already rotated.
	ErrInvalidRefreshToken = errors.New("refresh token invalid or expired")

	// ErrInvalidResetCode means the reset code is malformed, unknown, or
	// its secret half does not match the stored hash.
	ErrInvalidResetCode = errors.New("password reset code is not valid")

	// ErrResetTokenUsed means the reset exists but was already consumed or
	// has passed its TTL.
	ErrResetTokenUsed = errors.New("password reset token already used or expired")

	// ErrForbidden is returned when a caller targets a resource it does
	// not own (e.g. revoking another user's session).
	ErrForbidden = errors.New("access forbidden")

	// ErrUserNotFound is an internal signal from the store; the auth flows
	// translate it before it reaches the boundary.
	ErrUserNotFound = errors.New("user not found")

	// ErrFavoriteNotFound signals a lookup for a favorite the user does
	// not have.
	ErrFavoriteNotFound = errors.New("favorite not found")
)
