package models

import "time"

// Post status values. A post is created only after a successful publish call,
// so there is no draft or failed state to persist.
const (
	PostStatusPublished = "published"
	PostStatusScheduled = "scheduled"
)

// Post records a publish request that the aggregator accepted.
type Post struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	Platforms    []string   `gorm:"serializer:json" json:"platforms"`
	MediaURLs    []string   `gorm:"serializer:json" json:"media_urls,omitempty"`
	ScheduleDate *time.Time `json:"schedule_date,omitempty"`
	ExternalID   string     `json:"external_id,omitempty"`
	Status       string     `gorm:"not null" json:"status"`
	Response     string     `gorm:"type:text" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
