package models

import "time"

// TargetKind identifies what a vote points at. It is a closed enum; anything
// outside the two constants is rejected at the service boundary.
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
)

// Valid reports whether k is one of the allowed target kinds.
func (k TargetKind) Valid() bool {
	return k == TargetQuestion || k == TargetAnswer
}

// Vote directions. A value of 0 never exists; absence of a row means no vote.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote records a single user's vote on a question or answer.
// The (UserID, TargetKind, TargetID) triple is unique.
type Vote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetKind TargetKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_target" json:"target_kind"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_user_target" json:"target_id"`
	Value      int        `gorm:"not null" json:"value"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
