package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/infrastructure/models"
)

// DraftNFTRepository implements draft NFT data operations
type DraftNFTRepository struct {
	db *gorm.DB
}

// NewDraftNFTRepository creates a new draft NFT repository
func NewDraftNFTRepository(db *gorm.DB) *DraftNFTRepository {
	return &DraftNFTRepository{db: db}
}

// Create creates a new draft
func (r *DraftNFTRepository) Create(ctx context.Context, draft *entities.DraftNFT) error {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	if draft.Status == "" {
		draft.Status = entities.DraftStatusDraft
	}
	m := draftToModel(draft)

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	draft.CreatedAt = m.CreatedAt
	draft.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a draft by ID
func (r *DraftNFTRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DraftNFT, error) {
	var m models.DraftNFT
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return draftToEntity(&m), nil
}

// ListByCreator lists drafts of a creator, newest first. An empty status
// matches all states.
func (r *DraftNFTRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, status entities.DraftStatus) ([]*entities.DraftNFT, error) {
	db := GetDB(ctx, r.db)
	query := db.WithContext(ctx).Where("creator_user_id = ?", creatorID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var ms []models.DraftNFT
	if err := query.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	drafts := make([]*entities.DraftNFT, 0, len(ms))
	for i := range ms {
		drafts = append(drafts, draftToEntity(&ms[i]))
	}
	return drafts, nil
}

// MarkFinalized transitions a draft to finalized. Only rows still in draft
// state are affected, so the transition happens at most once.
func (r *DraftNFTRepository) MarkFinalized(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.DraftNFT{}).
		Where("id = ? AND status = ?", id, string(entities.DraftStatusDraft)).
		Update("status", string(entities.DraftStatusFinalized))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a draft row
func (r *DraftNFTRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.DraftNFT{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func draftToModel(d *entities.DraftNFT) *models.DraftNFT {
	return &models.DraftNFT{
		ID:              d.ID,
		CreatorUserID:   d.CreatorUserID,
		Name:            d.Name,
		Symbol:          d.Symbol.Ptr(),
		Description:     d.Description.Ptr(),
		ImageURL:        d.ImageURL,
		MetadataJSONURL: d.MetadataJSONURL,
		Price:           d.Price,
		Attributes:      d.Attributes.Ptr(),
		CollectionName:  d.CollectionName.Ptr(),
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func draftToEntity(m *models.DraftNFT) *entities.DraftNFT {
	return &entities.DraftNFT{
		ID:              m.ID,
		CreatorUserID:   m.CreatorUserID,
		Name:            m.Name,
		Symbol:          null.StringFromPtr(m.Symbol),
		Description:     null.StringFromPtr(m.Description),
		ImageURL:        m.ImageURL,
		MetadataJSONURL: m.MetadataJSONURL,
		Price:           m.Price,
		Attributes:      null.StringFromPtr(m.Attributes),
		CollectionName:  null.StringFromPtr(m.CollectionName),
		Status:          entities.DraftStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
