package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DraftStatus represents the lifecycle state of a pre-mint draft
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "draft"
	DraftStatusFinalized DraftStatus = "finalized"
)

// DraftNFT is a pre-chain-mint intent. It transitions to finalized exactly
// once, atomically with the creation of its NFTListing, and is never
// mutated afterwards.
type DraftNFT struct {
	ID              uuid.UUID   `json:"id"`
	CreatorUserID   uuid.UUID   `json:"creatorUserId"`
	Name            string      `json:"name"`
	Symbol          null.String `json:"symbol"`
	Description     null.String `json:"description"`
	ImageURL        string      `json:"imageUrl"`
	MetadataJSONURL string      `json:"metadataJsonUrl"`
	Price           string      `json:"price"`
	Attributes      null.String `json:"attributes"` // JSON array
	CollectionName  null.String `json:"collectionName"`
	Status          DraftStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// NFTListing is the canonical record of a minted asset. One row per mint
// address; never deleted. is_listed=true requires a non-null price.
type NFTListing struct {
	ID                 uuid.UUID   `json:"id"`
	MintAddress        string      `json:"mintAddress"`
	Name               string      `json:"name"`
	Symbol             null.String `json:"symbol"`
	Description        null.String `json:"description"`
	ImageURL           null.String `json:"imageUrl"`
	MetadataURL        null.String `json:"metadataUrl"`
	Attributes         null.String `json:"attributes"` // JSON array
	CollectionName     null.String `json:"collectionName"`
	Price              null.String `json:"price"`
	IsListed           bool        `json:"isListed"`
	OwnerWalletAddress string      `json:"ownerWalletAddress"`
	OwnerUserID        *uuid.UUID  `json:"ownerUserId,omitempty"`
	OwnerUsername      null.String `json:"ownerUsername,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// PurchaseRecord is the immutable audit row for an accepted purchase. The
// unique transaction signature is the idempotency guard.
type PurchaseRecord struct {
	ID                   uuid.UUID `json:"id"`
	NFTID                uuid.UUID `json:"nftId"`
	SellerWalletAddress  string    `json:"sellerWalletAddress"`
	BuyerWalletAddress   string    `json:"buyerWalletAddress"`
	Price                string    `json:"price"`
	TransactionSignature string    `json:"transactionSignature"`
	CreatedAt            time.Time `json:"createdAt"`
}

// NFTDetail is the ledger row of a mint merged with its resolved chain
// metadata. Chain is nil when the node or metadata account is unavailable.
type NFTDetail struct {
	Listing *NFTListing    `json:"listing"`
	Chain   *AssetMetadata `json:"chain,omitempty"`
}

// CreateDraftInput represents input for creating a draft NFT
type CreateDraftInput struct {
	Name            string `json:"name" binding:"required"`
	Symbol          string `json:"symbol"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl" binding:"required"`
	MetadataJSONURL string `json:"metadataJsonUrl" binding:"required"`
	Price           string `json:"price" binding:"required"`
	Attributes      string `json:"attributes"`
	CollectionName  string `json:"collectionName"`
}

// ListNFTInput represents input for listing or relisting a minted NFT
type ListNFTInput struct {
	MintAddress        string `json:"mintAddress" binding:"required"`
	Price              string `json:"price" binding:"required"`
	OwnerWalletAddress string `json:"ownerWalletAddress" binding:"required"`
	ImageURL           string `json:"imageUrl" binding:"required"`
	MetadataURL        string `json:"metadataUrl" binding:"required"`
	CollectionName     string `json:"collectionName"`
}

// FinalizeMintInput represents input for finalizing a draft after the
// client-side mint transaction landed
type FinalizeMintInput struct {
	MintAddress        string `json:"mintAddress" binding:"required"`
	OwnerWalletAddress string `json:"ownerWalletAddress" binding:"required"`
}

// PurchaseInput represents input for recording a purchase
type PurchaseInput struct {
	BuyerWalletAddress   string `json:"buyerWalletAddress" binding:"required"`
	TransactionSignature string `json:"transactionSignature" binding:"required"`
	PaidPrice            string `json:"paidPrice" binding:"required"`
}
