package models

import "time"

// Image records an uploaded image URL and who uploaded it.
type Image struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UploaderID uint      `gorm:"not null;index" json:"uploader_id"`
	Uploader   User      `gorm:"foreignKey:UploaderID" json:"uploader"`
	URL        string    `gorm:"not null" json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}
