package models

import "gorm.io/gorm"

// Resource represents a shared link/tool/article
type Resource struct {
	gorm.Model
	OwnerID     uint   `json:"owner_id" gorm:"index"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Kind        string `json:"kind" gorm:"size:20"` // article, tool, video, course
}

// CreateResourceRequest defines the request body for sharing a resource
type CreateResourceRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=120"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Kind        string `json:"kind" validate:"required,oneof=article tool video course"`
}
