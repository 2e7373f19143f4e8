package service

import (
	"context"
	"fmt"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/domain"
	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

// FavoriteService manages per-user video bookmarks.
type FavoriteService struct {
	repo  ports.FavoriteRepository
	audit ports.AuditLog
}

func NewFavoriteService(repo ports.FavoriteRepository, audit ports.AuditLog) *FavoriteService {
	return &FavoriteService{repo: repo, audit: audit}
}

// Add saves a video to the user's favorites.
func (s *FavoriteService) Add(ctx context.Context, userID int64, in ports.AddFavoriteInput, meta ports.ClientMeta) (*domain.Favorite, error) {
	favorite, err := s.repo.Add(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      userID,
		Action:      domain.ActionAddFavorite,
		EntityType:  domain.EntityVideo,
		EntityID:    in.VideoID,
		Description: fmt.Sprintf("Added video %q to favorites", in.Title),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	return favorite, nil
}

// Remove deletes a video from the user's favorites.
func (s *FavoriteService) Remove(ctx context.Context, userID int64, videoID string, meta ports.ClientMeta) error {
	if err := s.repo.Remove(ctx, userID, videoID); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		UserID:      userID,
		Action:      domain.ActionRemoveFavorite,
		EntityType:  domain.EntityVideo,
		EntityID:    videoID,
		Description: fmt.Sprintf("Removed video %s from favorites", videoID),
		IPAddress:   meta.IP,
		UserAgent:   meta.UserAgent,
	})

	return nil
}

// List returns the user's favorites, optionally filtered by search text.
func (s *FavoriteService) List(ctx context.Context, userID int64, search string) ([]domain.Favorite, error) {
	return s.repo.List(ctx, userID, search)
}
