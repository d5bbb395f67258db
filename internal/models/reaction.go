package models

import "time"

// Entity types reaction edges and comments can attach to.
const (
	EntityTypePost     = "post"
	EntityTypeProject  = "project"
	EntityTypeResource = "resource"
)

// Vote values. A single row per (entity, user) carries the polarity, so an
// upvote and a downvote can never coexist for the same pair.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote is a signed reaction on a votable entity (project, resource).
type Vote struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EntityType string    `json:"entity_type" gorm:"size:20;uniqueIndex:idx_vote_entity_user"`
	EntityID   string    `json:"entity_id" gorm:"index;uniqueIndex:idx_vote_entity_user"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_vote_entity_user"`
	Value      int       `json:"value"` // VoteUp or VoteDown
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Like represents a like on a post
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark represents a saved post/project/resource for a user
type Bookmark struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_entity_bookmark"`
	EntityType string    `json:"entity_type" gorm:"size:20;uniqueIndex:idx_user_entity_bookmark"`
	EntityID   string    `json:"entity_id" gorm:"index;uniqueIndex:idx_user_entity_bookmark"`
	CreatedAt  time.Time `json:"created_at"`
}
