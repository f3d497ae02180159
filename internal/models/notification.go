package models

import "time"

// NotificationType enumerates the events that produce a notification.
type NotificationType string

const (
	NotificationNewAnswer  NotificationType = "new_answer"
	NotificationNewComment NotificationType = "new_comment"
	NotificationMention    NotificationType = "mention"
)

// ReferenceKind identifies the entity a notification points at.
type ReferenceKind string

const (
	ReferenceQuestion ReferenceKind = "question"
	ReferenceAnswer   ReferenceKind = "answer"
	ReferenceComment  ReferenceKind = "comment"
)

// Notification is a persisted inbox entry for a user. Never created when the
// sender is also the recipient.
type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	RecipientID   uint             `gorm:"not null;index" json:"recipient_id"`
	Type          NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	ReferenceKind ReferenceKind    `gorm:"type:varchar(16);not null" json:"reference_kind"`
	ReferenceID   uint             `gorm:"not null" json:"reference_id"`
	SenderID      *uint            `json:"sender_id,omitempty"`
	Sender        *User            `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	IsRead        bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
}
