package models

import "gorm.io/gorm"

// Project represents a builder project
type Project struct {
	gorm.Model
	OwnerID     uint     `json:"owner_id" gorm:"index"`
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repo_url"`
	DemoURL     string   `json:"demo_url"`
	Tags        []string `json:"tags" gorm:"serializer:json"`
}

// CreateProjectRequest defines the request body for creating a project
type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=120"`
	Tagline     string   `json:"tagline,omitempty" validate:"omitempty,max=200"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	RepoURL     string   `json:"repo_url,omitempty" validate:"omitempty,url"`
	DemoURL     string   `json:"demo_url,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
}

// UpdateProjectRequest defines the request body for updating a project
type UpdateProjectRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Tagline     string   `json:"tagline,omitempty" validate:"omitempty,max=200"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	RepoURL     string   `json:"repo_url,omitempty" validate:"omitempty,url"`
	DemoURL     string   `json:"demo_url,omitempty" validate:"omitempty,url"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
}
