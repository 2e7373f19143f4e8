package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = time.Hour
	tokenBytes      = 32
)

// ResetConfirmationMessage is returned by ForgotPassword regardless of
// whether the identifier resolved to an account.
const ResetConfirmationMessage = "If the email or username exists, instructions to reset your password have been sent."

// AuthService orchestrates registration, login, refresh rotation, logout,
// and the password recovery handshake.
type AuthService struct {
	repo     ports.AuthRepository
	hasher   ports.PasswordHasher
	signer   ports.TokenSigner
	audit    ports.AuditLog
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	hasher ports.PasswordHasher,
	signer ports.TokenSigner,
	audit ports.AuditLog,
	notifier ports.Notifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		signer:   signer,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

// Register creates an account and opens its first session.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, meta ports.ClientMeta) (*ports.TokenPair, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, ports.NewUser{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      user.ID,
		Action:      domain.ActionRegister,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(user.ID, 10),
		Description: fmt.Sprintf("Account created for %s (%s)", user.Username, user.Email),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	return s.issueTokens(ctx, user.ID, user.Username, user.Email, meta)
}

// Login verifies credentials by username or email and opens a session.
// A missing account and a wrong password produce the same error so that
// login failures cannot enumerate users.
func (s *AuthService) Login(ctx context.Context, identifier, password string, meta ports.ClientMeta) (*ports.TokenPair, error) {
	user, err := s.repo.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("last login update failed")
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      user.ID,
		Action:      domain.ActionLogin,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(user.ID, 10),
		Description: fmt.Sprintf("User %s logged in", user.Username),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	return s.issueTokens(ctx, user.ID, user.Username, user.Email, meta)
}

// RefreshToken exchanges a live refresh token for a fresh access/refresh
// pair. The matched session is revoked before the new one is issued, so a
// refresh token is dead after its first successful use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string, meta ports.ClientMeta) (*ports.TokenPair, error) {
	sessions, err := s.repo.ListActiveSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	// Salted hashes are non-deterministic, so the token cannot be looked up
	// by index: test it against every active session. Active-session volume
	// per deployment keeps this bounded.
	var match *domain.ActiveSession
	for i := range sessions {
		if s.hasher.Verify(refreshToken, sessions[i].RefreshTokenHash) {
			match = &sessions[i]
			break
		}
	}
	if match == nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	if err := s.repo.RevokeSession(ctx, match.SessionID, match.UserID); err != nil {
		return nil, fmt.Errorf("revoke rotated session: %w", err)
	}

	return s.issueTokens(ctx, match.UserID, match.Username, match.Email, meta)
}

// Logout revokes the named session. Revoking a session that does not exist
// or is already revoked is a no-op; revoking someone else's session is
// forbidden.
func (s *AuthService) Logout(ctx context.Context, sessionID, userID int64, meta ports.ClientMeta) error {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil
	}
	if session.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.repo.RevokeSession(ctx, sessionID, userID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      userID,
		Action:      domain.ActionLogout,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(userID, 10),
		Description: fmt.Sprintf("Session %d revoked by owner", sessionID),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	return nil
}

// ForgotPassword starts the recovery handshake. The confirmation message is
// identical whether or not the identifier exists; only a disabled account is
// reported distinctly, matching the established API behaviour.
func (s *AuthService) ForgotPassword(ctx context.Context, identifier string, meta ports.ClientMeta) (*ports.ForgotPasswordResult, error) {
	user, err := s.repo.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &ports.ForgotPasswordResult{Message: ResetConfirmationMessage}, nil
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}
	tokenHash, err := s.hasher.Hash(token)
	if err != nil {
		return nil, fmt.Errorf("hash reset token: %w", err)
	}

	resetID, err := s.repo.CreatePasswordReset(ctx, user.ID, tokenHash, time.Now().UTC().Add(resetTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("create password reset: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      user.ID,
		Action:      domain.ActionForgotPassword,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(user.ID, 10),
		Description: fmt.Sprintf("Password recovery requested for %s (%s)", user.Username, user.Email),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	code := fmt.Sprintf("%d:%s", resetID, token)

	subject := "InnovaTube - Reset your password"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received a request to reset the password of your InnovaTube account.\n\n"+
			"Paste this code into the password recovery screen:\n\n%s\n\n"+
			"If you did not request this change, you can ignore this message.\n",
		user.Username, code)

	if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("reset email delivery failed")
	}

	return &ports.ForgotPasswordResult{Message: ResetConfirmationMessage, ResetCode: code}, nil
}

// ResetPassword redeems a recovery code, replaces the password, and returns
// a full login bundle. The password update and the token consumption commit
// in a single transaction.
func (s *AuthService) ResetPassword(ctx context.Context, code, newPassword string, meta ports.ClientMeta) (*ports.TokenPair, error) {
	resetID, token, ok := parseResetCode(code)
	if !ok {
		return nil, domain.ErrInvalidResetCode
	}

	reset, err := s.repo.GetPasswordReset(ctx, resetID)
	if err != nil {
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	if reset == nil {
		return nil, domain.ErrInvalidResetCode
	}

	if !reset.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	if reset.UsedAt != nil || reset.ExpiresAt.Before(time.Now().UTC()) {
		return nil, domain.ErrResetTokenUsed
	}
	if !s.hasher.Verify(token, reset.TokenHash) {
		return nil, domain.ErrInvalidResetCode
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash new password: %w", err)
	}

	if err := s.repo.ConsumePasswordResetAndSetPassword(ctx, resetID, reset.UserID, newHash); err != nil {
		return nil, fmt.Errorf("apply password reset: %w", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      reset.UserID,
		Action:      domain.ActionResetPassword,
		EntityType:  domain.EntityUser,
		EntityID:    strconv.FormatInt(reset.UserID, 10),
		Description: fmt.Sprintf("User %s reset their password", reset.Username),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	return s.issueTokens(ctx, reset.UserID, reset.Username, reset.Email, meta)
}

// issueTokens opens a session and pairs its refresh token with a signed
// access token.
func (s *AuthService) issueTokens(ctx context.Context, userID int64, username, email string, meta ports.ClientMeta) (*ports.TokenPair, error) {
	refreshToken, _, err := s.createSession(ctx, userID, meta)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.signer.Issue(userID, username, email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &ports.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID,
		Username:     username,
		Email:        email,
	}, nil
}

// createSession generates a fresh refresh token, stores its hash with a
// fixed TTL, and returns the plaintext exactly once.
func (s *AuthService) createSession(ctx context.Context, userID int64, meta ports.ClientMeta) (string, int64, error) {
	token, err := generateToken()
	if err != nil {
		return "", 0, fmt.Errorf("generate refresh token: %w", err)
	}

	tokenHash, err := s.hasher.Hash(token)
	if err != nil {
		return "", 0, fmt.Errorf("hash refresh token: %w", err)
	}

	sessionID, err := s.repo.CreateSession(ctx, userID, tokenHash, meta.IP, meta.UserAgent, time.Now().UTC().Add(refreshTokenTTL))
	if err != nil {
		return "", 0, fmt.Errorf("create session: %w", err)
	}

	return token, sessionID, nil
}

// generateToken returns a 256-bit random secret, Base64URL-encoded.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// parseResetCode splits a "resetId:token" recovery code.
func parseResetCode(code string) (int64, string, bool) {
	idStr, token, found := strings.Cut(code, ":")
	if !found || token == "" {
		return 0, "", false
	}
	resetID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return resetID, token, true
}
