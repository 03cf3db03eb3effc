package model

import (
	"time"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	TransactionID string    `gorm:"uniqueIndex;not null;size:64"`
	UserID        uint64    `gorm:"not null;index"`
	Type          string    `gorm:"not null;size:32"`
	Status        string    `gorm:"not null;size:16"`
	Amount        string    `gorm:"not null;size:50"`
	AmountInCents int64     `gorm:"not null"`
	ResultBalance string    `gorm:"size:50"`
	Description   string    `gorm:"type:text"`
	FailureReason string    `gorm:"type:text"`
	SourceUserID  *uint64   `gorm:"index"`
	ReferralLevel int       `gorm:"not null;default:0"`
	ProcessedBy   *uint64
	CreatedAt     time.Time `gorm:"not null"`
	ProcessedAt   *time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
