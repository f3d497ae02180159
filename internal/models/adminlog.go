package models

import "time"

// AdminAction enumerates the moderation actions recorded in the audit trail.
type AdminAction string

const (
	ActionBanUser        AdminAction = "ban_user"
	ActionUnbanUser      AdminAction = "unban_user"
	ActionDeleteUser     AdminAction = "delete_user"
	ActionDeleteQuestion AdminAction = "delete_question"
	ActionDeleteAnswer   AdminAction = "delete_answer"
	ActionCreateTag      AdminAction = "create_tag"
	ActionEditTag        AdminAction = "edit_tag"
	ActionDeleteTag      AdminAction = "delete_tag"
)

// AdminLog is an append-only audit record of a moderation action.
type AdminLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	AdminID     uint        `gorm:"not null;index" json:"admin_id"`
	Admin       User        `gorm:"foreignKey:AdminID" json:"admin"`
	ActionType  AdminAction `gorm:"type:varchar(32);not null" json:"action_type"`
	TargetID    uint        `gorm:"not null" json:"target_id"`
	TargetModel string      `gorm:"type:varchar(32);not null" json:"target_model"`
	Notes       string      `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
