package repositories

import (
	"context"

	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
)

// ListingFilter narrows marketplace listing queries
type ListingFilter struct {
	Name           string // optional substring match
	RecentDelisted bool   // include unlisted rows updated within the recency window
}

// NFTListingRepository defines NFT listing data operations
type NFTListingRepository interface {
	Create(ctx context.Context, nft *entities.NFTListing) error
	Update(ctx context.Context, nft *entities.NFTListing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.NFTListing, error)
	GetByMint(ctx context.Context, mintAddress string) (*entities.NFTListing, error)
	// GetByMintForUpdate selects the row with an exclusive row lock held
	// until the surrounding transaction ends. Must be called inside a
	// UnitOfWork transaction.
	GetByMintForUpdate(ctx context.Context, mintAddress string) (*entities.NFTListing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entities.NFTListing, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID, listedOnly bool) ([]*entities.NFTListing, error)
	ListByWallet(ctx context.Context, walletAddress string, listedOnly bool) ([]*entities.NFTListing, error)
}
