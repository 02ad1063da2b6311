package usecases

import (
	"context"

	"mint-market.backend/internal/domain/entities"
)

// ChainReader is the read-only chain capability the usecases depend on.
// Implemented by the Solana RPC reader.
type ChainReader interface {
	ValidateAddress(address string) error
	ListTokenAccounts(ctx context.Context, ownerAddress string) ([]entities.TokenAccount, error)
	ResolveAssociatedAccount(ctx context.Context, mintAddress, ownerAddress string) (*entities.TokenAccount, error)
	GetMetadataAccount(ctx context.Context, mintAddress string) (*entities.AssetMetadata, error)
}

// MetadataFetcher retrieves URI-linked off-chain JSON documents
type MetadataFetcher interface {
	FetchJSON(ctx context.Context, url string, result any) error
}

// BlobStore abstracts object storage for media and metadata documents
type BlobStore interface {
	Upload(ctx context.Context, data []byte, originalName, contentType, prefix string) (key string, url string, err error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// SMSSender delivers one-time login codes
type SMSSender interface {
	SendCode(ctx context.Context, phoneNumber, code string) error
}

// LoginCodeStore keeps short-lived 2FA login codes
type LoginCodeStore interface {
	Save(ctx context.Context, userID, code string) error
	Verify(ctx context.Context, userID, code string) error
}
