package models

import (
	"time"

	"github.com/google/uuid"
)

// NFTListing rows are never deleted; mint_address is the natural key.
type NFTListing struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MintAddress        string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name               string     `gorm:"type:varchar(255);not null"`
	Symbol             *string    `gorm:"type:varchar(32)"`
	Description        *string    `gorm:"type:text"`
	ImageURL           *string    `gorm:"type:varchar(512)"`
	MetadataURL        *string    `gorm:"type:varchar(512)"`
	Attributes         *string    `gorm:"type:jsonb"`
	CollectionName     *string    `gorm:"type:varchar(255)"`
	Price              *string    `gorm:"type:numeric(20,9)"`
	IsListed           bool       `gorm:"not null;default:false;index"`
	OwnerWalletAddress string     `gorm:"type:varchar(64);not null;index"`
	OwnerUserID        *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (NFTListing) TableName() string {
	return "nfts"
}
