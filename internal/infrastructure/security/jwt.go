package security

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

const (
	tokenIssuer   = "innovatube-api"
	tokenAudience = "innovatube-clients"
)

type accessTokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// JWTSigner issues and verifies HS256 access tokens carrying the user id
// (subject), username, and email, plus issuer/audience/expiry.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTSigner(secret string, ttl time.Duration) *JWTSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTSigner{secret: []byte(secret), ttl: ttl}
}

// Issue signs a stateless access token for the identified user.
func (s *JWTSigner) Issue(userID int64, username, email string) (string, error) {
	now := time.Now().UTC()
	claims := accessTokenClaims{
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning its identity claims.
func (s *JWTSigner) Verify(token string) (*ports.AccessClaims, error) {
	var claims accessTokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return &ports.AccessClaims{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
