package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	domainRepos "mint-market.backend/internal/domain/repositories"
	"mint-market.backend/internal/infrastructure/models"
)

// recentDelistedWindow is how long an unlisted NFT keeps showing up in the
// marketplace feed after delisting or sale.
const recentDelistedWindow = 7 * 24 * time.Hour

// NFTListingRepository implements NFT listing data operations
type NFTListingRepository struct {
	db *gorm.DB
}

// listingRow is the read shape: a listing plus the owner's username joined
// from users. Unlinked owners scan as a null username.
type listingRow struct {
	models.NFTListing
	OwnerUsername *string `gorm:"column:owner_username"`
}

// withOwner joins the owning account so reads carry the username.
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Model(&models.NFTListing{}).
		Select("nfts.*, users.username AS owner_username").
		Joins("LEFT JOIN users ON users.id = nfts.owner_user_id")
}

// NewNFTListingRepository creates a new NFT listing repository
func NewNFTListingRepository(db *gorm.DB) *NFTListingRepository {
	return &NFTListingRepository{db: db}
}

// Create inserts a new listing row
func (r *NFTListingRepository) Create(ctx context.Context, nft *entities.NFTListing) error {
	if nft.ID == uuid.Nil {
		nft.ID = uuid.New()
	}
	m := listingToModel(nft)

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	nft.CreatedAt = m.CreatedAt
	nft.UpdatedAt = m.UpdatedAt
	return nil
}

// Update persists all mutable fields of an existing listing row
func (r *NFTListingRepository) Update(ctx context.Context, nft *entities.NFTListing) error {
	m := listingToModel(nft)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.NFTListing{}).
		Where("mint_address = ?", nft.MintAddress).
		Updates(map[string]interface{}{
			"name":                 m.Name,
			"symbol":               m.Symbol,
			"description":          m.Description,
			"image_url":            m.ImageURL,
			"metadata_url":         m.MetadataURL,
			"attributes":           m.Attributes,
			"collection_name":      m.CollectionName,
			"price":                m.Price,
			"is_listed":            m.IsListed,
			"owner_wallet_address": m.OwnerWalletAddress,
			"owner_user_id":        m.OwnerUserID,
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// GetByID gets a listing by its database ID
func (r *NFTListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.NFTListing, error) {
	var row listingRow
	db := GetDB(ctx, r.db)
	if err := withOwner(db.WithContext(ctx)).Where("nfts.id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return rowToEntity(&row), nil
}

// GetByMint gets a listing by mint address
func (r *NFTListingRepository) GetByMint(ctx context.Context, mintAddress string) (*entities.NFTListing, error) {
	var row listingRow
	db := GetDB(ctx, r.db)
	if err := withOwner(db.WithContext(ctx)).Where("nfts.mint_address = ?", mintAddress).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return rowToEntity(&row), nil
}

// GetByMintForUpdate selects the listing row with a FOR UPDATE lock. The
// lock serializes concurrent purchases of the same mint; it is released
// when the surrounding transaction commits or rolls back. No username join
// here: postgres rejects FOR UPDATE across the nullable side of an outer
// join, and the write paths resolve the owner themselves.
func (r *NFTListingRepository) GetByMintForUpdate(ctx context.Context, mintAddress string) (*entities.NFTListing, error) {
	var m models.NFTListing
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("mint_address = ?", mintAddress).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return listingToEntity(&m), nil
}

// List returns marketplace rows: everything listed, plus recently delisted
// rows when the filter asks for them, listed first and freshest on top.
func (r *NFTListingRepository) List(ctx context.Context, filter domainRepos.ListingFilter) ([]*entities.NFTListing, error) {
	db := GetDB(ctx, r.db)
	query := withOwner(db.WithContext(ctx))

	if filter.RecentDelisted {
		cutoff := time.Now().Add(-recentDelistedWindow)
		query = query.Where("nfts.is_listed = ? OR (nfts.is_listed = ? AND nfts.updated_at > ?)", true, false, cutoff)
	} else {
		query = query.Where("nfts.is_listed = ?", true)
	}
	if filter.Name != "" {
		query = query.Where("nfts.name LIKE ?", "%"+filter.Name+"%")
	}

	var rows []listingRow
	if err := query.Order("nfts.is_listed DESC, nfts.updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	nfts := make([]*entities.NFTListing, 0, len(rows))
	for i := range rows {
		nfts = append(nfts, rowToEntity(&rows[i]))
	}
	return nfts, nil
}

// ListByOwner lists NFTs owned by a user account
func (r *NFTListingRepository) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, listedOnly bool) ([]*entities.NFTListing, error) {
	db := GetDB(ctx, r.db)
	query := withOwner(db.WithContext(ctx)).Where("nfts.owner_user_id = ?", ownerUserID)
	if listedOnly {
		query = query.Where("nfts.is_listed = ?", true)
	}

	var rows []listingRow
	if err := query.Order("nfts.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	nfts := make([]*entities.NFTListing, 0, len(rows))
	for i := range rows {
		nfts = append(nfts, rowToEntity(&rows[i]))
	}
	return nfts, nil
}

// ListByWallet lists NFTs held by a wallet address, linked account or not
func (r *NFTListingRepository) ListByWallet(ctx context.Context, walletAddress string, listedOnly bool) ([]*entities.NFTListing, error) {
	db := GetDB(ctx, r.db)
	query := withOwner(db.WithContext(ctx)).Where("nfts.owner_wallet_address = ?", walletAddress)
	if listedOnly {
		query = query.Where("nfts.is_listed = ?", true)
	}

	var rows []listingRow
	if err := query.Order("nfts.created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	nfts := make([]*entities.NFTListing, 0, len(rows))
	for i := range rows {
		nfts = append(nfts, rowToEntity(&rows[i]))
	}
	return nfts, nil
}

func listingToModel(n *entities.NFTListing) *models.NFTListing {
	return &models.NFTListing{
		ID:                 n.ID,
		MintAddress:        n.MintAddress,
		Name:               n.Name,
		Symbol:             n.Symbol.Ptr(),
		Description:        n.Description.Ptr(),
		ImageURL:           n.ImageURL.Ptr(),
		MetadataURL:        n.MetadataURL.Ptr(),
		Attributes:         n.Attributes.Ptr(),
		CollectionName:     n.CollectionName.Ptr(),
		Price:              n.Price.Ptr(),
		IsListed:           n.IsListed,
		OwnerWalletAddress: n.OwnerWalletAddress,
		OwnerUserID:        n.OwnerUserID,
		CreatedAt:          n.CreatedAt,
		UpdatedAt:          n.UpdatedAt,
	}
}

func listingToEntity(m *models.NFTListing) *entities.NFTListing {
	return &entities.NFTListing{
		ID:                 m.ID,
		MintAddress:        m.MintAddress,
		Name:               m.Name,
		Symbol:             null.StringFromPtr(m.Symbol),
		Description:        null.StringFromPtr(m.Description),
		ImageURL:           null.StringFromPtr(m.ImageURL),
		MetadataURL:        null.StringFromPtr(m.MetadataURL),
		Attributes:         null.StringFromPtr(m.Attributes),
		CollectionName:     null.StringFromPtr(m.CollectionName),
		Price:              null.StringFromPtr(m.Price),
		IsListed:           m.IsListed,
		OwnerWalletAddress: m.OwnerWalletAddress,
		OwnerUserID:        m.OwnerUserID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func rowToEntity(row *listingRow) *entities.NFTListing {
	n := listingToEntity(&row.NFTListing)
	n.OwnerUsername = null.StringFromPtr(row.OwnerUsername)
	return n
}
