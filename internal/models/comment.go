package models

import "gorm.io/gorm"

// Comment represents a comment attached to a post, project or resource
type Comment struct {
	gorm.Model
	EntityType string `json:"entity_type" gorm:"size:20;index:idx_comment_entity"`
	EntityID   string `json:"entity_id" gorm:"index:idx_comment_entity"`
	UserID     uint   `json:"user_id" gorm:"index"`
	Content    string `json:"content" validate:"required,min=1,max=1000"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=post project resource"`
	EntityID   string `json:"entity_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=1,max=1000"`
}
