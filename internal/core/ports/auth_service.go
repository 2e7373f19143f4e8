package ports

import "context"

// ClientMeta carries the request metadata recorded with every mutating
// auth operation.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// TokenPair is the login bundle returned by every operation that
// establishes a session. RefreshToken is plaintext and shown exactly once.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// RegisterInput holds the already-validated registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// ForgotPasswordResult is the outcome of a recovery request. Message is the
// same generic confirmation whether or not the identifier exists; ResetCode
// is populated only when a reset was actually created, for non-production
// delivery echoes.
type ForgotPasswordResult struct {
	Message   string
	ResetCode string
}

// AuthService is the credential and session lifecycle orchestrator.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, meta ClientMeta) (*TokenPair, error)
	Login(ctx context.Context, identifier, password string, meta ClientMeta) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string, meta ClientMeta) (*TokenPair, error)
	Logout(ctx context.Context, sessionID, userID int64, meta ClientMeta) error
	ForgotPassword(ctx context.Context, identifier string, meta ClientMeta) (*ForgotPasswordResult, error)
	ResetPassword(ctx context.Context, code, newPassword string, meta ClientMeta) (*TokenPair, error)
}
