package models

import "time"

// Message payload variants.
const (
	MessageTypeText  = "text"
	MessageTypeVoice = "voice"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// Message belongs to exactly one conversation. IsRead is meaningful for the
// non-sender side only.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"index"`
	SenderID       uint      `json:"sender_id" gorm:"index"`
	Type           string    `json:"type" gorm:"size:10;default:'text'"`
	Content        string    `json:"content"`
	MediaURL       string    `json:"media_url,omitempty"`
	Duration       int       `json:"duration,omitempty"` // seconds, voice messages
	IsRead         bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Type     string `json:"type" validate:"required,oneof=text voice image file"`
	Content  string `json:"content,omitempty" validate:"omitempty,max=4000"`
	MediaURL string `json:"media_url,omitempty" validate:"omitempty,url"`
	Duration int    `json:"duration,omitempty" validate:"omitempty,min=0,max=600"`
}
