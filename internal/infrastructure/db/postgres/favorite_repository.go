package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

// FavoriteRepository persists per-user video bookmarks.
type FavoriteRepository struct {
	db DB
}

func NewFavoriteRepository(db DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add upserts a favorite; re-favoriting the same video refreshes the
// snapshot fields instead of failing.
func (r *FavoriteRepository) Add(ctx context.Context, userID int64, in ports.AddFavoriteInput) (*domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.QueryRow(ctx, `
		INSERT INTO favorites (user_id, video_id, title, description, channel_title, channel_id, thumbnail_url, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, video_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    channel_title = EXCLUDED.channel_title,
		    channel_id = EXCLUDED.channel_id,
		    thumbnail_url = EXCLUDED.thumbnail_url,
		    published_at = EXCLUDED.published_at
		RETURNING favorite_id, user_id, video_id, title, description, channel_title,
		          channel_id, thumbnail_url, published_at, created_at`,
		userID, in.VideoID, in.Title, in.Description, in.ChannelTitle, in.ChannelID, in.ThumbnailURL, in.PublishedAt,
	).Scan(&f.ID, &f.UserID, &f.VideoID, &f.Title, &f.Description, &f.ChannelTitle,
		&f.ChannelID, &f.ThumbnailURL, &f.PublishedAt, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	return &f, nil
}

// Remove deletes the user's favorite for a video.
func (r *FavoriteRepository) Remove(ctx context.Context, userID int64, videoID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND video_id = $2`,
		userID, videoID,
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// List returns the user's favorites newest first, optionally filtered by a
// case-insensitive title or channel match.
func (r *FavoriteRepository) List(ctx context.Context, userID int64, search string) ([]domain.Favorite, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search == "" {
		rows, err = r.db.Query(ctx, `
			SELECT favorite_id, user_id, video_id, title, description, channel_title,
			       channel_id, thumbnail_url, published_at, created_at
			FROM favorites
			WHERE user_id = $1
			ORDER BY created_at DESC`,
			userID,
		)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT favorite_id, user_id, video_id, title, description, channel_title,
			       channel_id, thumbnail_url, published_at, created_at
			FROM favorites
			WHERE user_id = $1
			  AND (title ILIKE '%' || $2 || '%' OR channel_title ILIKE '%' || $2 || '%')
			ORDER BY created_at DESC`,
			userID, search,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.VideoID, &f.Title, &f.Description, &f.ChannelTitle,
			&f.ChannelID, &f.ThumbnailURL, &f.PublishedAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}
