package domain

import "time"

// Favorite is a video bookmarked by a user. Snapshot fields (title, channel,
// thumbnail) are denormalised from the video catalogue at save time.
type Favorite struct {
	ID           int64      `json:"favorite_id"`
	UserID       int64      `json:"-"`
	VideoID      string     `json:"video_id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	ChannelTitle *string    `json:"channel_title,omitempty"`
	ChannelID    *string    `json:"channel_id,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
