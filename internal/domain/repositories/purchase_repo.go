package repositories

import (
	"context"

	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
)

// PurchaseRepository defines purchase audit row operations. Rows are
// insert-only; the unique transaction signature guards replays.
type PurchaseRepository interface {
	Create(ctx context.Context, record *entities.PurchaseRecord) error
	GetBySignature(ctx context.Context, signature string) (*entities.PurchaseRecord, error)
	ListByNFT(ctx context.Context, nftID uuid.UUID) ([]*entities.PurchaseRecord, error)
}
