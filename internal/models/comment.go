package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is attached to exactly one of a question or an answer; exactly one
// of QuestionID/AnswerID is non-nil.
type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AuthorID   uint           `gorm:"not null;index" json:"author_id"`
	Author     User           `gorm:"foreignKey:AuthorID" json:"author"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	QuestionID *uint          `gorm:"index" json:"question_id,omitempty"`
	AnswerID   *uint          `gorm:"index" json:"answer_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasSingleParent reports whether exactly one parent reference is set.
func (c *Comment) HasSingleParent() bool {
	return (c.QuestionID != nil) != (c.AnswerID != nil)
}
