package postgres

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

func newMockRepo(t *testing.T) (*AuthRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewAuthRepository(mock), mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

var userMockColumns = []string{
	"user_id", "first_name", "last_name", "username", "email", "password_hash",
	"is_active", "email_verified_at", "last_login_at", "created_at", "updated_at",
}

func TestAuthRepository_CreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	hash := []byte("$2a$10$digest")
	rows := pgxmock.NewRows(userMockColumns).
		AddRow(int64(1), "Ana", "Lopez", "ana", "ana@x.com", hash,
			true, (*time.Time)(nil), (*time.Time)(nil), now, now)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "Lopez", "ana", "ana@x.com", hash).
		WillReturnRows(rows)

	user, err := repo.CreateUser(context.Background(), ports.NewUser{
		FirstName: "Ana", LastName: "Lopez",
		Username: "ana", Email: "ana@x.com", PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.ID != 1 || user.Username != "ana" || !user.IsActive {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !bytes.Equal(user.PasswordHash, hash) {
		t.Fatal("password hash not round-tripped")
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_CreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "Lopez", "ana", "ana@x.com", []byte("h")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err := repo.CreateUser(context.Background(), ports.NewUser{
		FirstName: "Ana", LastName: "Lopez",
		Username: "ana", Email: "ana@x.com", PasswordHash: []byte("h"),
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_FindUserByIdentifier_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userMockColumns))

	_, err := repo.FindUserByIdentifier(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_CreateSession(t *testing.T) {
	repo, mock := newMockRepo(t)

	expiresAt := time.Now().UTC().Add(7 * 24 * time.Hour)
	mock.ExpectQuery(`INSERT INTO user_sessions`).
		WithArgs(int64(1), []byte("hash"), "203.0.113.7", "go-test", expiresAt).
		WillReturnRows(pgxmock.NewRows([]string{"session_id"}).AddRow(int64(11)))

	id, err := repo.CreateSession(context.Background(), 1, []byte("hash"), "203.0.113.7", "go-test", expiresAt)
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected session id 11, got %d", id)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_ListActiveSessions(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := pgxmock.NewRows([]string{"session_id", "user_id", "refresh_token_hash", "username", "email"}).
		AddRow(int64(11), int64(1), []byte("h1"), "ana", "ana@x.com").
		AddRow(int64(12), int64(2), []byte("h2"), "bob", "bob@x.com")
	mock.ExpectQuery(`SELECT (.+) FROM user_sessions s`).
		WillReturnRows(rows)

	sessions, err := repo.ListActiveSessions(context.Background())
	if err != nil {
		t.Fatalf("list active sessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != 11 || sessions[0].Username != "ana" {
		t.Fatalf("unexpected first session: %+v", sessions[0])
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_FindSessionByID_Unknown(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM user_sessions`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"session_id"}))

	session, err := repo.FindSessionByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("expected nil error for unknown session, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session, got %+v", session)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_RevokeSession_NoRowsIsFine(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE user_sessions SET revoked_at`).
		WithArgs(int64(11), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.RevokeSession(context.Background(), 11, 1); err != nil {
		t.Fatalf("revoke of already-revoked session errored: %v", err)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_GetPasswordReset_Unknown(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM password_resets p`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"reset_id"}))

	view, err := repo.GetPasswordReset(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected nil error for unknown reset, got %v", err)
	}
	if view != nil {
		t.Fatalf("expected nil view, got %+v", view)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_ConsumePasswordResetAndSetPassword(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs([]byte("newhash"), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE password_resets SET used_at`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	if err := repo.ConsumePasswordResetAndSetPassword(context.Background(), 5, 1, []byte("newhash")); err != nil {
		t.Fatalf("consume reset failed: %v", err)
	}

	expectationsMet(t, mock)
}

func TestAuthRepository_ConsumePasswordReset_RollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs([]byte("newhash"), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE password_resets SET used_at`).
		WithArgs(int64(5)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ConsumePasswordResetAndSetPassword(context.Background(), 5, 1, []byte("newhash"))
	if err == nil {
		t.Fatal("expected error when the second statement fails")
	}

	expectationsMet(t, mock)
}
