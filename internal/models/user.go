package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	AvatarURL  string `json:"avatar_url"`
}

// UserCompact is the author/actor summary embedded in enriched payloads.
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact projects a user (and optionally its profile) into a UserCompact
func (u *User) ToCompact(profile *Profile) UserCompact {
	c := UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
	if profile != nil {
		c.Username = profile.Username
	}
	return c
}

type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
