package entities

import (
	"time"

	"github.com/google/uuid"
)

// WalletLink ties a Solana wallet address to a user account. An address
// belongs to at most one account, and a user has at most one primary link.
type WalletLink struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	WalletAddress string    `json:"walletAddress"`
	IsPrimary     bool      `json:"isPrimary"`
	LinkedAt      time.Time `json:"linkedAt"`
}

// LinkWalletInput represents input for linking a wallet
type LinkWalletInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}
