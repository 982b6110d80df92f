package models

import "time"

// SocialAccount stores a user's credentials for the aggregator service.
// The API key authenticates publish calls; the optional profile key selects
// a managed profile on multi-profile aggregator plans.
type SocialAccount struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Platform   string    `gorm:"not null" json:"platform"`
	APIKey     string    `gorm:"not null" json:"api_key"`
	ProfileKey string    `json:"profile_key,omitempty"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
