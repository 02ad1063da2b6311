package models

import (
	"time"

	"github.com/google/uuid"
)

type DraftNFT struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CreatorUserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Symbol          *string   `gorm:"type:varchar(32)"`
	Description     *string   `gorm:"type:text"`
	ImageURL        string    `gorm:"type:varchar(512);not null"`
	MetadataJSONURL string    `gorm:"column:metadata_json_url;type:varchar(512);not null"`
	Price           string    `gorm:"type:numeric(20,9);not null"`
	Attributes      *string   `gorm:"type:jsonb"`
	CollectionName  *string   `gorm:"type:varchar(255)"`
	Status          string    `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DraftNFT) TableName() string {
	return "draft_nfts"
}
