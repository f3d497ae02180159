package models

import "time"

// Tag labels questions. Tags are created lazily the first time a question
// uses the name; Name and Slug are unique after normalization.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TagWithCount is a Tag joined with the number of questions carrying it,
// used by the popular-tags listing.
type TagWithCount struct {
	Tag
	QuestionCount int64 `json:"question_count"`
}
