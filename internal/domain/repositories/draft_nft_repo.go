package repositories

import (
	"context"

	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
)

// DraftNFTRepository defines draft NFT data operations
type DraftNFTRepository interface {
	Create(ctx context.Context, draft *entities.DraftNFT) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DraftNFT, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, status entities.DraftStatus) ([]*entities.DraftNFT, error)
	MarkFinalized(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
