package models

import "time"

// Notification types written by the fan-out paths.
const (
	NotificationTypeUpvote            = "upvote"
	NotificationTypeLike              = "like"
	NotificationTypeComment           = "comment"
	NotificationTypeFollow            = "follow"
	NotificationTypeMessage           = "message"
	NotificationTypeGrantApplication  = "grant_application"
	NotificationTypeApplicationStatus = "application_status"
)

// Notification represents a per-recipient social event (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    string    `json:"target_id"`                  // post ID, project ID, conversation ID, ...
	TargetType  string    `json:"target_type" gorm:"size:20"` // post, project, resource, user, conversation, grant
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
