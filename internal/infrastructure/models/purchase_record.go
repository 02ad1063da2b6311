package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecord is insert-only; the unique index on transaction_signature
// is the replay guard for purchase notifications.
type PurchaseRecord struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	NFTID                uuid.UUID `gorm:"column:nft_id;type:uuid;not null;index"`
	SellerWalletAddress  string    `gorm:"type:varchar(64);not null"`
	BuyerWalletAddress   string    `gorm:"type:varchar(64);not null"`
	Price                string    `gorm:"type:numeric(20,9);not null"`
	TransactionSignature string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	CreatedAt            time.Time
}

func (PurchaseRecord) TableName() string {
	return "transactions"
}
