package models

import (
	"time"

	"gorm.io/gorm"
)

// Answer represents an answer to a question. At most one answer per question
// may have IsAccepted set; the answer service enforces this transactionally.
type Answer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	QuestionID uint           `gorm:"not null;index" json:"question_id"`
	Question   *Question      `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Upvotes    int            `gorm:"not null;default:0" json:"upvotes"`
	Downvotes  int            `gorm:"not null;default:0" json:"downvotes"`
	IsAccepted bool           `gorm:"not null;default:false" json:"is_accepted"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
