package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

type stubFavoriteRepo struct {
	addFn    func(ctx context.Context, userID int64, in ports.AddFavoriteInput) (*domain.Favorite, error)
	removeFn func(ctx context.Context, userID int64, videoID string) error
	listFn   func(ctx context.Context, userID int64, search string) ([]domain.Favorite, error)
}

func (r *stubFavoriteRepo) Add(ctx context.Context, userID int64, in ports.AddFavoriteInput) (*domain.Favorite, error) {
	return r.addFn(ctx, userID, in)
}

func (r *stubFavoriteRepo) Remove(ctx context.Context, userID int64, videoID string) error {
	return r.removeFn(ctx, userID, videoID)
}

func (r *stubFavoriteRepo) List(ctx context.Context, userID int64, search string) ([]domain.Favorite, error) {
	return r.listFn(ctx, userID, search)
}

func TestFavoriteService_Add_RecordsAudit(t *testing.T) {
	repo := &stubFavoriteRepo{
		addFn: func(ctx context.Context, userID int64, in ports.AddFavoriteInput) (*domain.Favorite, error) {
			return &domain.Favorite{ID: 7, UserID: userID, VideoID: in.VideoID, Title: in.Title, CreatedAt: time.Now().UTC()}, nil
		},
	}
	audit := &stubAudit{}
	svc := NewFavoriteService(repo, audit)

	fav, err := svc.Add(context.Background(), 1, ports.AddFavoriteInput{VideoID: "vid-1", Title: "Go talk"}, testMeta)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if fav.ID != 7 {
		t.Fatalf("unexpected favorite: %+v", fav)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Action != domain.ActionAddFavorite || entry.EntityType != domain.EntityVideo || entry.EntityID != "vid-1" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestFavoriteService_Add_RepoFailureSkipsAudit(t *testing.T) {
	repoErr := errors.New("insert favorite: boom")
	repo := &stubFavoriteRepo{
		addFn: func(ctx context.Context, userID int64, in ports.AddFavoriteInput) (*domain.Favorite, error) {
			return nil, repoErr
		},
	}
	audit := &stubAudit{}
	svc := NewFavoriteService(repo, audit)

	if _, err := svc.Add(context.Background(), 1, ports.AddFavoriteInput{VideoID: "vid-1"}, testMeta); !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("audit recorded for a failed add: %+v", audit.entries)
	}
}

func TestFavoriteService_Remove_NotFound(t *testing.T) {
	repo := &stubFavoriteRepo{
		removeFn: func(ctx context.Context, userID int64, videoID string) error {
			return domain.ErrFavoriteNotFound
		},
	}
	audit := &stubAudit{}
	svc := NewFavoriteService(repo, audit)

	if err := svc.Remove(context.Background(), 1, "missing", testMeta); !errors.Is(err, domain.ErrFavoriteNotFound) {
		t.Fatalf("expected ErrFavoriteNotFound, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("audit recorded for a failed remove: %+v", audit.entries)
	}
}

func TestFavoriteService_List_PassesSearchThrough(t *testing.T) {
	var gotSearch string
	repo := &stubFavoriteRepo{
		listFn: func(ctx context.Context, userID int64, search string) ([]domain.Favorite, error) {
			gotSearch = search
			return []domain.Favorite{{ID: 7, VideoID: "vid-1"}}, nil
		},
	}
	svc := NewFavoriteService(repo, &stubAudit{})

	favorites, err := svc.List(context.Background(), 1, "tutorial")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotSearch != "tutorial" || len(favorites) != 1 {
		t.Fatalf("unexpected result: search=%q favorites=%+v", gotSearch, favorites)
	}
}
