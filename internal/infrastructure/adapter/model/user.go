package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement"`
	Email            string     `gorm:"uniqueIndex;not null;size:255"`
	Phone            string     `gorm:"size:32"`
	PasswordHash     string     `gorm:"not null;size:255"`
	Balance          int64      `gorm:"not null;default:0;check:chk_users_balance_non_negative,balance >= 0"` // cents
	Status           string     `gorm:"not null;size:16;default:Active;index"`
	Role             string     `gorm:"not null;size:16;default:user"`
	ReferralCode     *string    `gorm:"uniqueIndex;size:32"`
	ReferrerID       *uint64    `gorm:"index"`
	HasDeposited     bool       `gorm:"not null;default:false"`
	FirstDepositAt   *time.Time
	TotalDeposited   int64     `gorm:"not null;default:0"` // cents
	TransactionCount uint64    `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`

	Referrer *User `gorm:"foreignKey:ReferrerID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
