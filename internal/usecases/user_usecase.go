package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/domain/repositories"
)

// UserUsecase handles profile reads and partial updates
type UserUsecase struct {
	userRepo   repositories.UserRepository
	walletRepo repositories.WalletLinkRepository
	media      BlobStore
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, walletRepo repositories.WalletLinkRepository, media BlobStore) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		media:      media,
	}
}

// GetByID returns a user by ID
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetByWallet resolves a wallet address to the public profile of the
// account it is linked to
func (u *UserUsecase) GetByWallet(ctx context.Context, walletAddress string) (*entities.PublicProfile, error) {
	link, err := u.walletRepo.GetByAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, link.UserID)
	if err != nil {
		return nil, err
	}

	return &entities.PublicProfile{
		ID:                user.ID,
		Username:          user.Username,
		WalletAddress:     link.WalletAddress,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt,
	}, nil
}

// Update applies a partial profile update. Enabling 2FA requires a phone
// number on file.
func (u *UserUsecase) Update(ctx context.Context, userID uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username.String {
		taken, err := u.userRepo.GetByUsername(ctx, *input.Username)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if taken != nil && taken.ID != userID {
			return nil, domainerrors.Conflict("username already taken")
		}
		user.Username = null.StringFrom(*input.Username)
	}

	if input.PhoneNumber != nil {
		if *input.PhoneNumber == "" {
			user.PhoneNumber = null.String{}
		} else {
			user.PhoneNumber = null.StringFrom(*input.PhoneNumber)
		}
	}

	if input.Is2FAEnabled != nil {
		if *input.Is2FAEnabled && !user.PhoneNumber.Valid {
			return nil, fmt.Errorf("%w: 2fa requires a phone number", domainerrors.ErrInvalidInput)
		}
		user.Is2FAEnabled = *input.Is2FAEnabled
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfilePicture uploads a new avatar and stores its public URL
func (u *UserUsecase) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, data []byte, originalName, contentType string) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, url, err := u.media.Upload(ctx, data, originalName, contentType, "avatars/")
	if err != nil {
		return nil, err
	}

	user.ProfilePictureURL = null.StringFrom(url)
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
