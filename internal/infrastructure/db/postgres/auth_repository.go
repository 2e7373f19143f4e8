package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

// AuthRepository persists users, sessions, and password resets.
type AuthRepository struct {
	db DB
}

func NewAuthRepository(db DB) *AuthRepository {
	return &AuthRepository{db: db}
}

const userColumns = `user_id, first_name, last_name, username, email, password_hash,
       is_active, email_verified_at, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.EmailVerifiedAt, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user; duplicate usernames or emails map to
// domain.ErrUserExists via the unique-violation SQLSTATE.
func (r *AuthRepository) CreateUser(ctx context.Context, in ports.NewUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		in.FirstName, in.LastName, in.Username, in.Email, in.PasswordHash,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindUserByIdentifier resolves a username or an email address.
func (r *AuthRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1 OR email = $1`,
		identifier,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// TouchLastLogin stamps the user's last successful login.
func (r *AuthRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_login_at = now(), updated_at = now()
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// CreateSession inserts a refresh-token grant and returns its id.
func (r *AuthRepository) CreateSession(ctx context.Context, userID int64, refreshTokenHash []byte, ip, userAgent string, expiresAt time.Time) (int64, error) {
	var sessionID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_sessions (user_id, refresh_token_hash, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING session_id`,
		userID, refreshTokenHash, ip, userAgent, expiresAt,
	).Scan(&sessionID)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return sessionID, nil
}

// ListActiveSessions returns every usable session joined with its owner.
func (r *AuthRepository) ListActiveSessions(ctx context.Context) ([]domain.ActiveSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.session_id, s.user_id, s.refresh_token_hash, u.username, u.email
		FROM user_sessions s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.revoked_at IS NULL
		  AND s.expires_at > now()`,
	)
	if err != nil {
		return nil, fmt.Errorf("query active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ActiveSession
	for rows.Next() {
		var s domain.ActiveSession
		if err := rows.Scan(&s.SessionID, &s.UserID, &s.RefreshTokenHash, &s.Username, &s.Email); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// FindSessionByID returns the session in any state, or nil when unknown.
func (r *AuthRepository) FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRow(ctx, `
		SELECT session_id, user_id, refresh_token_hash, user_agent, ip_address,
		       created_at, expires_at, revoked_at
		FROM user_sessions
		WHERE session_id = $1`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &s.RefreshTokenHash, &s.UserAgent, &s.IPAddress,
		&s.CreatedAt, &s.ExpiresAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// RevokeSession stamps revoked_at, scoped to the owning user. Already-revoked
// and absent sessions match zero rows, which is fine.
func (r *AuthRepository) RevokeSession(ctx context.Context, sessionID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE user_sessions SET revoked_at = now()
		WHERE session_id = $1 AND user_id = $2 AND revoked_at IS NULL`,
		sessionID, userID,
	)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// CreatePasswordReset inserts a recovery grant and returns its id.
func (r *AuthRepository) CreatePasswordReset(ctx context.Context, userID int64, tokenHash []byte, expiresAt time.Time) (int64, error) {
	var resetID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO password_resets (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING reset_id`,
		userID, tokenHash, expiresAt,
	).Scan(&resetID)
	if err != nil {
		return 0, fmt.Errorf("insert password reset: %w", err)
	}
	return resetID, nil
}

// GetPasswordReset loads the reset joined with its owner, or nil when the
// id is unknown.
func (r *AuthRepository) GetPasswordReset(ctx context.Context, resetID int64) (*domain.PasswordResetView, error) {
	var v domain.PasswordResetView
	err := r.db.QueryRow(ctx, `
		SELECT p.reset_id, p.user_id, u.username, u.email, u.is_active,
		       p.token_hash, p.expires_at, p.used_at
		FROM password_resets p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.reset_id = $1`,
		resetID,
	).Scan(&v.ResetID, &v.UserID, &v.Username, &v.Email, &v.IsActive,
		&v.TokenHash, &v.ExpiresAt, &v.UsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	return &v, nil
}

// ConsumePasswordResetAndSetPassword replaces the user's password hash and
// marks the reset used in one transaction. Either both statements commit or
// neither does.
func (r *AuthRepository) ConsumePasswordResetAndSetPassword(ctx context.Context, resetID, userID int64, newPasswordHash []byte) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now()
		WHERE user_id = $2`,
		newPasswordHash, userID,
	); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE password_resets SET used_at = now()
		WHERE reset_id = $1`,
		resetID,
	); err != nil {
		return fmt.Errorf("consume password reset: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reset transaction: %w", err)
	}
	return nil
}
