package repositories

import (
	"context"

	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
)

// WalletLinkRepository defines wallet link data operations
type WalletLinkRepository interface {
	Create(ctx context.Context, link *entities.WalletLink) error
	GetByAddress(ctx context.Context, address string) (*entities.WalletLink, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.WalletLink, error)
	GetByUserAndAddress(ctx context.Context, userID uuid.UUID, address string) (*entities.WalletLink, error)
	SetPrimary(ctx context.Context, userID uuid.UUID, address string) error
	Delete(ctx context.Context, userID uuid.UUID, address string) error
}
