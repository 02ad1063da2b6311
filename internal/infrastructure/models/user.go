package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username             *string   `gorm:"type:varchar(100);uniqueIndex"`
	HashedPassword       string    `gorm:"type:varchar(255);not null"`
	ContactWalletAddress *string   `gorm:"type:varchar(64)"`
	PhoneNumber          *string   `gorm:"type:varchar(32)"`
	Is2FAEnabled         bool      `gorm:"column:is_2fa_enabled;default:false"`
	ProfilePictureURL    *string   `gorm:"type:varchar(512)"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
