package ports

// PasswordHasher produces and verifies slow, salted, one-way digests. The
// same contract covers account passwords, refresh tokens, and reset tokens:
// nothing that round-trips to plaintext is ever persisted.
type PasswordHasher interface {
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches digest. A malformed digest
	// is a mismatch, never an error.
	Verify(plaintext string, digest []byte) bool
}

// AccessClaims are the identity claims carried by a signed access token.
type AccessClaims struct {
	UserID   int64
	Username string
	Email    string
}

// TokenSigner issues and verifies short-lived, stateless access tokens.
// Individual access tokens are never persisted or revoked; revocation
// happens at the session level only.
type TokenSigner interface {
	Issue(userID int64, username, email string) (string, error)
	Verify(token string) (*AccessClaims, error)
}
