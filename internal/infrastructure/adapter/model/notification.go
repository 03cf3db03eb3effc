package model

import (
	"time"
)

// Notification represents the database model for user notifications
type Notification struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index:idx_notifications_user_read,priority:1"`
	Kind      string    `gorm:"not null;size:32"`
	Title     string    `gorm:"not null;size:255"`
	Message   string    `gorm:"type:text"`
	Read      bool      `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2"`
	CreatedAt time.Time `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
