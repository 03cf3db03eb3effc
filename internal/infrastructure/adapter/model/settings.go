package model

import (
	"time"

	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
)

// Settings is the single platform settings row. Nested values are stored as JSON.
type Settings struct {
	ID            uint                 `gorm:"primaryKey"`
	MinDeposit    int64                `gorm:"not null"`
	MaxDeposit    int64                `gorm:"not null"`
	MinWithdrawal int64                `gorm:"not null"`
	MaxWithdrawal int64                `gorm:"not null"`
	BankAccounts  []entity.BankAccount `gorm:"type:jsonb;serializer:json"`
	Banner        entity.Banner        `gorm:"type:jsonb;serializer:json"`
	Popup         entity.Popup         `gorm:"type:jsonb;serializer:json"`
	Level1RateBps int                  `gorm:"column:level1_rate_bps;not null"`
	Level2RateBps int                  `gorm:"column:level2_rate_bps;not null"`
	Level3RateBps int                  `gorm:"column:level3_rate_bps;not null"`
	UpdatedAt     time.Time            `gorm:"not null"`
	UpdatedBy     *uint64
}

// TableName specifies the table name for Settings
func (Settings) TableName() string {
	return "settings"
}
