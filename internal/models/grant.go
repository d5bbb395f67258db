package models

import (
	"time"

	"gorm.io/gorm"
)

// Grant application statuses.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Grant represents a funding opportunity posted by a user
type Grant struct {
	gorm.Model
	OwnerID     uint      `json:"owner_id" gorm:"index"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // smallest currency unit
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status" gorm:"size:20;default:'open'"` // open, closed
}

// GrantSubmission attaches an existing project to a grant.
// A user may hold at most one submission per grant (application-layer check).
type GrantSubmission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GrantID   uint      `json:"grant_id" gorm:"index;uniqueIndex:idx_grant_user_submission"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_grant_user_submission"`
	ProjectID uint      `json:"project_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// GrantApplication is a free-form pitch for a grant.
// A user may hold at most one application per grant (application-layer check).
type GrantApplication struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GrantID   uint      `json:"grant_id" gorm:"index;uniqueIndex:idx_grant_user_application"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_grant_user_application"`
	Pitch     string    `json:"pitch"`
	Status    string    `json:"status" gorm:"size:20;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGrantRequest defines the request body for posting a grant
type CreateGrantRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=120"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Amount      int64     `json:"amount" validate:"required,min=1"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

// CreateSubmissionRequest defines the request body for submitting a project to a grant
type CreateSubmissionRequest struct {
	ProjectID uint `json:"project_id" validate:"required"`
}

// CreateApplicationRequest defines the request body for applying to a grant
type CreateApplicationRequest struct {
	Pitch string `json:"pitch" validate:"required,min=10,max=5000"`
}

// UpdateApplicationStatusRequest defines the request body for deciding an application
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
