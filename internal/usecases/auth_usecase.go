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
	"mint-market.backend/pkg/crypto"
	"mint-market.backend/pkg/jwt"
)

// AuthUsecase handles registration and login, including the optional SMS
// second factor.
type AuthUsecase struct {
	uow        repositories.UnitOfWork
	userRepo   repositories.UserRepository
	walletRepo repositories.WalletLinkRepository
	jwtService *jwt.JWTService
	chain      ChainReader
	codes      LoginCodeStore
	sms        SMSSender
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	walletRepo repositories.WalletLinkRepository,
	jwtService *jwt.JWTService,
	chain ChainReader,
	codes LoginCodeStore,
	sms SMSSender,
) *AuthUsecase {
	return &AuthUsecase{
		uow:        uow,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		jwtService: jwtService,
		chain:      chain,
		codes:      codes,
		sms:        sms,
	}
}

// Register creates an account and, when a wallet address is supplied,
// links it as the primary wallet in the same transaction.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	if input.WalletAddress != "" {
		if err := u.chain.ValidateAddress(input.WalletAddress); err != nil {
			return nil, err
		}
		link, err := u.walletRepo.GetByAddress(ctx, input.WalletAddress)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if link != nil {
			return nil, domainerrors.Conflict("wallet already linked to another account")
		}
	}

	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("email already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if input.Username != "" {
		if _, err := u.userRepo.GetByUsername(ctx, input.Username); err == nil {
			return nil, domainerrors.Conflict("username already taken")
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		Username:     nullIfEmpty(input.Username),
		PasswordHash: passwordHash,
		PhoneNumber:  nullIfEmpty(input.PhoneNumber),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if input.WalletAddress == "" {
			return nil
		}

		link := &entities.WalletLink{
			UserID:        user.ID,
			WalletAddress: input.WalletAddress,
			IsPrimary:     true,
		}
		if err := u.walletRepo.Create(txCtx, link); err != nil {
			return err
		}
		addr := input.WalletAddress
		user.ContactWalletAddress = null.StringFrom(addr)
		return u.userRepo.SetContactWallet(txCtx, user.ID, &addr)
	})
	if err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// Login authenticates by email and password. Accounts with 2FA enabled
// receive an SMS code instead of a token; the token is issued by Verify2FA.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if user.Is2FAEnabled {
		if !user.PhoneNumber.Valid {
			return nil, fmt.Errorf("%w: 2fa enabled without phone number", domainerrors.ErrForbidden)
		}

		code, err := crypto.GenerateNumericCode(6)
		if err != nil {
			return nil, err
		}
		if err := u.codes.Save(ctx, user.ID.String(), code); err != nil {
			return nil, err
		}
		if err := u.sms.SendCode(ctx, user.PhoneNumber.String, code); err != nil {
			return nil, err
		}
		return &entities.AuthResponse{Requires2FA: true}, nil
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// Verify2FA completes a 2FA login by checking the SMS code
func (u *AuthUsecase) Verify2FA(ctx context.Context, input *entities.Verify2FAInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.codes.Verify(ctx, user.ID.String(), input.Code); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken: token,
		User:        user,
	}, nil
}

// GetUserByID returns the user behind an authenticated request
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
