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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m := userToModel(user)

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update persists profile fields of an existing user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":               m.Username,
			"phone_number":           m.PhoneNumber,
			"is_2fa_enabled":         m.Is2FAEnabled,
			"contact_wallet_address": m.ContactWalletAddress,
			"profile_picture_url":    m.ProfilePictureURL,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetContactWallet updates the denormalized primary wallet address. A nil
// address clears it.
func (r *UserRepository) SetContactWallet(ctx context.Context, userID uuid.UUID, address *string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("contact_wallet_address", address)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func userToModel(u *entities.User) *models.User {
	return &models.User{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username.Ptr(),
		HashedPassword:       u.PasswordHash,
		ContactWalletAddress: u.ContactWalletAddress.Ptr(),
		PhoneNumber:          u.PhoneNumber.Ptr(),
		Is2FAEnabled:         u.Is2FAEnabled,
		ProfilePictureURL:    u.ProfilePictureURL.Ptr(),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                   m.ID,
		Email:                m.Email,
		Username:             null.StringFromPtr(m.Username),
		PasswordHash:         m.HashedPassword,
		ContactWalletAddress: null.StringFromPtr(m.ContactWalletAddress),
		PhoneNumber:          null.StringFromPtr(m.PhoneNumber),
		Is2FAEnabled:         m.Is2FAEnabled,
		ProfilePictureURL:    null.StringFromPtr(m.ProfilePictureURL),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
