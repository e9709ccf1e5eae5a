package models

import (
	"time"
)

// User represents an account in the system. Users authenticate with
// their email address rather than a username.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;unique;index"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(150)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(150)"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	IsStaff      bool      `json:"is_staff" gorm:"default:false"`
	TokenVersion uint      `json:"-" gorm:"default:0"`

	// Relationships. Deleting a user cascades to everything they own.
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Topics        []Topic        `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Tags          []Tag          `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Resources     []Resource     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Questions     []Question     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// RegisterRequest represents the payload to create a new user
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"user@example.com"`
	Password  string `json:"password" binding:"required" example:"ThirtyHairyHippos896"`
	FirstName string `json:"first_name,omitempty" example:"Test"`
	LastName  string `json:"last_name,omitempty" example:"User"`
}

// UpdateMeRequest represents a partial update to the authenticated
// user's own profile. Pointer fields distinguish "absent" from "empty".
type UpdateMeRequest struct {
	Email     *string `json:"email,omitempty" example:"new@example.com"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// UserResponse represents the public view of a user
type UserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Email     string `json:"email" example:"user@example.com"`
	FirstName string `json:"first_name" example:"Test"`
	LastName  string `json:"last_name" example:"User"`
}
