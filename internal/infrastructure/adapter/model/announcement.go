package model

import (
	"time"
)

// Announcement represents the database model for announcements
type Announcement struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"not null;size:255"`
	Content   string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"not null;index"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Announcement
func (Announcement) TableName() string {
	return "announcements"
}
