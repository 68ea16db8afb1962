package models

import (
	"time"

	"github.com/google/uuid"
)

// User is never hard-deleted; deactivation flips IsActive.
type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email         string     `gorm:"not null;size:255;index:idx_users_active_email,unique,where:is_active = true" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	FirstName     string     `gorm:"size:100;not null" json:"first_name"`
	LastName      string     `gorm:"size:100" json:"last_name"`
	Phone         string     `gorm:"size:50" json:"phone"`
	IsActive      bool       `gorm:"not null;default:true;index" json:"is_active"`
	EmailVerified bool       `gorm:"not null;default:false" json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
