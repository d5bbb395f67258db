package models

import "time"

// StoryTTL is the fixed visibility window for a story.
const StoryTTL = 24 * time.Hour

// Story is ephemeral content. Expired rows are not deleted; they are
// filtered out at query time by comparing ExpiresAt against now.
type Story struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AuthorID   uint      `json:"author_id" gorm:"index"`
	MediaURL   string    `json:"media_url"`
	Kind       string    `json:"kind" gorm:"size:10"` // image or video
	Duration   int       `json:"duration"`            // seconds
	ViewsCount int       `json:"views_count" gorm:"default:0"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// Visible reports whether the story is inside its TTL window at the given time.
func (s *Story) Visible(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
	Kind     string `json:"kind" validate:"required,oneof=image video"`
	Duration int    `json:"duration,omitempty" validate:"omitempty,min=0,max=60"`
}
