package models

import "time"

// Profile holds the mutable presentation metadata for a user (1:1).
// Every viewed user must resolve to some profile; missing rows are
// auto-provisioned on first read.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	Bio       string    `json:"bio"`
	Skills    []string  `json:"skills" gorm:"serializer:json"`
	Website   string    `json:"website"`
	Github    string    `json:"github"`
	Twitter   string    `json:"twitter"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	IsStaff   bool      `json:"is_staff" gorm:"default:false"`
	IsNewsBot bool      `json:"is_news_bot" gorm:"default:false"`
	// FCM registration token for best-effort push, empty when the user has
	// no registered device.
	DeviceToken string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateProfileRequest defines the request body for updating the caller's profile
type UpdateProfileRequest struct {
	Username string   `json:"username,omitempty" validate:"omitempty,min=2,max=30,alphanum"`
	Bio      string   `json:"bio,omitempty" validate:"omitempty,max=500"`
	Skills   []string `json:"skills,omitempty" validate:"omitempty,dive,min=1,max=40"`
	Website  string   `json:"website,omitempty" validate:"omitempty,url"`
	Github   string   `json:"github,omitempty" validate:"omitempty,url"`
	Twitter  string   `json:"twitter,omitempty" validate:"omitempty,url"`
}
