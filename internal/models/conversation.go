package models

import "time"

// Conversation is a pairwise DM thread. The pair is stored canonically with
// UserAID < UserBID so lookups for (a,b) and (b,a) resolve to the same row;
// the unique index closes the concurrent get-or-create race.
type Conversation struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserAID       uint      `json:"user_a_id" gorm:"index;uniqueIndex:idx_conversation_pair"`
	UserBID       uint      `json:"user_b_id" gorm:"index;uniqueIndex:idx_conversation_pair"`
	LastMessageAt time.Time `json:"last_message_at" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
}

// CanonicalPair normalizes two user ids into storage order.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// OtherParticipant returns the participant that is not the viewer.
func (c *Conversation) OtherParticipant(viewerID uint) uint {
	if c.UserAID == viewerID {
		return c.UserBID
	}
	return c.UserAID
}

// HasParticipant reports whether the given user is one of the two sides.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// CreateConversationRequest defines the request body for opening a conversation
type CreateConversationRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}
