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

// WalletLinkRepository implements wallet link data operations
type WalletLinkRepository struct {
	db *gorm.DB
}

// NewWalletLinkRepository creates a new wallet link repository
func NewWalletLinkRepository(db *gorm.DB) *WalletLinkRepository {
	return &WalletLinkRepository{db: db}
}

// Create creates a new wallet link
func (r *WalletLinkRepository) Create(ctx context.Context, link *entities.WalletLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	m := &models.WalletLink{
		ID:            link.ID,
		UserID:        link.UserID,
		WalletAddress: link.WalletAddress,
		IsPrimary:     link.IsPrimary,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	link.LinkedAt = m.CreatedAt
	return nil
}

// GetByAddress gets a wallet link by address, regardless of owner
func (r *WalletLinkRepository) GetByAddress(ctx context.Context, address string) (*entities.WalletLink, error) {
	var m models.WalletLink
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("wallet_address = ?", address).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return walletLinkToEntity(&m), nil
}

// GetByUserID gets wallet links for a user, primary first
func (r *WalletLinkRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.WalletLink, error) {
	var ms []models.WalletLink
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_primary DESC, created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	links := make([]*entities.WalletLink, 0, len(ms))
	for i := range ms {
		links = append(links, walletLinkToEntity(&ms[i]))
	}
	return links, nil
}

// GetByUserAndAddress gets a specific link owned by the user
func (r *WalletLinkRepository) GetByUserAndAddress(ctx context.Context, userID uuid.UUID, address string) (*entities.WalletLink, error) {
	var m models.WalletLink
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ? AND wallet_address = ?", userID, address).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return walletLinkToEntity(&m), nil
}

// SetPrimary marks the given address primary and unsets every other link
// of the user
func (r *WalletLinkRepository) SetPrimary(ctx context.Context, userID uuid.UUID, address string) error {
	db := GetDB(ctx, r.db)

	if err := db.WithContext(ctx).Model(&models.WalletLink{}).
		Where("user_id = ?", userID).
		Update("is_primary", false).Error; err != nil {
		return err
	}

	result := db.WithContext(ctx).Model(&models.WalletLink{}).
		Where("user_id = ? AND wallet_address = ?", userID, address).
		Update("is_primary", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a wallet link
func (r *WalletLinkRepository) Delete(ctx context.Context, userID uuid.UUID, address string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("user_id = ? AND wallet_address = ?", userID, address).
		Delete(&models.WalletLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func walletLinkToEntity(m *models.WalletLink) *entities.WalletLink {
	return &entities.WalletLink{
		ID:            m.ID,
		UserID:        m.UserID,
		WalletAddress: m.WalletAddress,
		IsPrimary:     m.IsPrimary,
		LinkedAt:      m.CreatedAt,
	}
}
