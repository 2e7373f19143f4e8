// Package security implements the password-hashing and token-signing ports.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes secrets with bcrypt. Each call salts independently, so
// two digests of the same input differ and verification is the only way back.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost factor. Costs outside
// bcrypt's supported range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *BcryptHasher) Hash(plaintext string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt hash: %w", err)
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. A corrupt or truncated
// digest is treated as a mismatch.
func (h *BcryptHasher) Verify(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
