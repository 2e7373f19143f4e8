package ports

import (
	"context"
	"time"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
)

// AddFavoriteInput holds the video snapshot saved with a favorite.
type AddFavoriteInput struct {
	VideoID      string
	Title        string
	Description  *string
	ChannelTitle *string
	ChannelID    *string
	ThumbnailURL *string
	PublishedAt  *time.Time
}

// FavoriteService manages a user's bookmarked videos.
type FavoriteService interface {
	Add(ctx context.Context, userID int64, in AddFavoriteInput, meta ClientMeta) (*domain.Favorite, error)
	Remove(ctx context.Context, userID int64, videoID string, meta ClientMeta) error
	List(ctx context.Context, userID int64, search string) ([]domain.Favorite, error)
}

// FavoriteRepository is the persistence contract for favorites.
type FavoriteRepository interface {
	// Add upserts the favorite and returns the stored row.
	Add(ctx context.Context, userID int64, in AddFavoriteInput) (*domain.Favorite, error)
	Remove(ctx context.Context, userID int64, videoID string) error
	// List returns the user's favorites, newest first, optionally filtered
	// by a case-insensitive title/channel match.
	List(ctx context.Context, userID int64, search string) ([]domain.Favorite, error)
}
