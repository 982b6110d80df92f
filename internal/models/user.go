// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account that owns social accounts and posts.
type User struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Username       string          `gorm:"uniqueIndex;not null" json:"username"`
	Email          string          `gorm:"uniqueIndex;not null" json:"email"`
	Password       string          `gorm:"not null" json:"-"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	SocialAccounts []SocialAccount `gorm:"foreignKey:UserID" json:"social_accounts,omitempty"`
	Posts          []Post          `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
