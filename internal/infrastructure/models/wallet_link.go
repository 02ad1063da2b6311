package models

import (
	"time"

	"github.com/google/uuid"
)

// WalletLink rows map Solana addresses to accounts. The unique index on
// wallet_address enforces the one-account-per-address rule globally.
type WalletLink struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	WalletAddress string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	IsPrimary     bool      `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (WalletLink) TableName() string {
	return "user_wallets"
}
