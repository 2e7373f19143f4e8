package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/IDGS-901-22001379/innovatube-backend/internal/core/ports"
)

// FavoriteHandler exposes the favorites CRUD endpoints. All routes require
// an authenticated user.
type FavoriteHandler struct {
	favoriteService ports.FavoriteService
}

func NewFavoriteHandler(favoriteService ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type addFavoriteRequest struct {
	VideoID      string     `json:"video_id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Description  *string    `json:"description,omitempty"`
	ChannelTitle *string    `json:"channel_title,omitempty"`
	ChannelID    *string    `json:"channel_id,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// Add saves a video to the caller's favorites.
//
// @Summary      Add a favorite
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        body  body      addFavoriteRequest  true  "Video snapshot"
// @Success      201   {object}  domain.Favorite
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/videos/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	favorite, err := h.favoriteService.Add(c.Request().Context(), userID, ports.AddFavoriteInput{
		VideoID:      req.VideoID,
		Title:        req.Title,
		Description:  req.Description,
		ChannelTitle: req.ChannelTitle,
		ChannelID:    req.ChannelID,
		ThumbnailURL: req.ThumbnailURL,
		PublishedAt:  req.PublishedAt,
	}, clientMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, favorite)
}

// Remove deletes a video from the caller's favorites.
//
// @Summary      Remove a favorite
// @Tags         videos
// @Produce      json
// @Param        videoId  path  string  true  "Video id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/videos/favorites/{videoId} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	videoID := c.Param("videoId")
	if videoID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "videoId is required")
	}

	if err := h.favoriteService.Remove(c.Request().Context(), userID, videoID, clientMeta(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the caller's favorites, optionally filtered by search text.
//
// @Summary      List favorites
// @Tags         videos
// @Produce      json
// @Param        search  query  string  false  "Title or channel filter"
// @Success      200  {array}  domain.Favorite
// @Security     BearerAuth
// @Router       /api/videos/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	favorites, err := h.favoriteService.List(c.Request().Context(), userID, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favorites)
}
