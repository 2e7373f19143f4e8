package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

var favoriteMockColumns = []string{
	"favorite_id", "user_id", "video_id", "title", "description", "channel_title",
	"channel_id", "thumbnail_url", "published_at", "created_at",
}

func newMockFavoriteRepo(t *testing.T) (*FavoriteRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewFavoriteRepository(mock), mock
}

func TestFavoriteRepository_Add(t *testing.T) {
	repo, mock := newMockFavoriteRepo(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(favoriteMockColumns).
		AddRow(int64(7), int64(1), "dQw4w9WgXcQ", "A video",
			(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*time.Time)(nil), now)
	mock.ExpectQuery(`INSERT INTO favorites`).
		WithArgs(int64(1), "dQw4w9WgXcQ", "A video",
			(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*time.Time)(nil)).
		WillReturnRows(rows)

	fav, err := repo.Add(context.Background(), 1, ports.AddFavoriteInput{
		VideoID: "dQw4w9WgXcQ",
		Title:   "A video",
	})
	if err != nil {
		t.Fatalf("add favorite failed: %v", err)
	}
	if fav.ID != 7 || fav.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected favorite: %+v", fav)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestFavoriteRepository_Remove_NotFound(t *testing.T) {
	repo, mock := newMockFavoriteRepo(t)

	mock.ExpectExec(`DELETE FROM favorites`).
		WithArgs(int64(1), "missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Remove(context.Background(), 1, "missing")
	if !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestFavoriteRepository_List_WithSearch(t *testing.T) {
	repo, mock := newMockFavoriteRepo(t)

	now := time.Now().UTC()
	rows := pgxmock.NewRows(favoriteMockColumns).
		AddRow(int64(7), int64(1), "vid-1", "Go tutorial",
			(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*time.Time)(nil), now)
	mock.ExpectQuery(`FROM favorites`).
		WithArgs(int64(1), "tutorial").
		WillReturnRows(rows)

	favorites, err := repo.List(context.Background(), 1, "tutorial")
	if err != nil {
		t.Fatalf("list favorites failed: %v", err)
	}
	if len(favorites) != 1 || favorites[0].Title != "Go tutorial" {
		t.Fatalf("unexpected favorites: %+v", favorites)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}
