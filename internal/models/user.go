// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a user's permission level.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account in the Verita application.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"unique;not null" json:"username"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:varchar(16);not null;default:user" json:"role"`
	IsBanned     bool   `gorm:"not null;default:false" json:"is_banned"`
	ProfilePhoto string `json:"profile_photo"`
	Bio          string `json:"bio"`
	// ResetOTP holds the pending password-reset code; nil when no reset is in flight.
	ResetOTP          *string        `json:"-"`
	ResetOTPExpiresAt *time.Time     `json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
