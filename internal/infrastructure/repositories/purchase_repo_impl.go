package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/infrastructure/models"
)

// PurchaseRepository implements purchase audit row operations
type PurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts the audit row. A duplicate transaction signature surfaces
// as ErrAlreadyProcessed so callers can treat replays as a no-op.
func (r *PurchaseRepository) Create(ctx context.Context, record *entities.PurchaseRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m := &models.PurchaseRecord{
		ID:                   record.ID,
		NFTID:                record.NFTID,
		SellerWalletAddress:  record.SellerWalletAddress,
		BuyerWalletAddress:   record.BuyerWalletAddress,
		Price:                record.Price,
		TransactionSignature: record.TransactionSignature,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyProcessed
		}
		return err
	}
	record.CreatedAt = m.CreatedAt
	return nil
}

// GetBySignature gets a purchase record by its transaction signature
func (r *PurchaseRepository) GetBySignature(ctx context.Context, signature string) (*entities.PurchaseRecord, error) {
	var m models.PurchaseRecord
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("transaction_signature = ?", signature).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return purchaseToEntity(&m), nil
}

// ListByNFT lists purchase records of an NFT, newest first
func (r *PurchaseRepository) ListByNFT(ctx context.Context, nftID uuid.UUID) ([]*entities.PurchaseRecord, error) {
	var ms []models.PurchaseRecord
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("nft_id = ?", nftID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	records := make([]*entities.PurchaseRecord, 0, len(ms))
	for i := range ms {
		records = append(records, purchaseToEntity(&ms[i]))
	}
	return records, nil
}

func purchaseToEntity(m *models.PurchaseRecord) *entities.PurchaseRecord {
	return &entities.PurchaseRecord{
		ID:                   m.ID,
		NFTID:                m.NFTID,
		SellerWalletAddress:  m.SellerWalletAddress,
		BuyerWalletAddress:   m.BuyerWalletAddress,
		Price:                m.Price,
		TransactionSignature: m.TransactionSignature,
		CreatedAt:            m.CreatedAt,
	}
}
