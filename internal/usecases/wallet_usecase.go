package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/domain/repositories"
)

// WalletUsecase manages the wallet links of an account. An address belongs
// to at most one account; the primary link is denormalized onto the user
// row as the contact wallet.
type WalletUsecase struct {
	uow        repositories.UnitOfWork
	walletRepo repositories.WalletLinkRepository
	userRepo   repositories.UserRepository
	chain      ChainReader
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	uow repositories.UnitOfWork,
	walletRepo repositories.WalletLinkRepository,
	userRepo repositories.UserRepository,
	chain ChainReader,
) *WalletUsecase {
	return &WalletUsecase{
		uow:        uow,
		walletRepo: walletRepo,
		userRepo:   userRepo,
		chain:      chain,
	}
}

// Link attaches a wallet address to the user. Linking an address the user
// already owns is a no-op; an address held by another account conflicts.
// The user's first link becomes primary.
func (w *WalletUsecase) Link(ctx context.Context, userID uuid.UUID, input *entities.LinkWalletInput) (*entities.WalletLink, error) {
	if err := w.chain.ValidateAddress(input.WalletAddress); err != nil {
		return nil, err
	}

	existing, err := w.walletRepo.GetByAddress(ctx, input.WalletAddress)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.UserID == userID {
			return existing, nil
		}
		return nil, domainerrors.Conflict("wallet already linked to another account")
	}

	links, err := w.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	link := &entities.WalletLink{
		UserID:        userID,
		WalletAddress: input.WalletAddress,
		IsPrimary:     len(links) == 0,
	}

	err = w.uow.Do(ctx, func(txCtx context.Context) error {
		if err := w.walletRepo.Create(txCtx, link); err != nil {
			return err
		}
		if link.IsPrimary {
			addr := link.WalletAddress
			return w.userRepo.SetContactWallet(txCtx, userID, &addr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// SetPrimary makes one of the user's linked wallets the primary link and
// refreshes the denormalized contact wallet on the user row.
func (w *WalletUsecase) SetPrimary(ctx context.Context, userID uuid.UUID, address string) error {
	if _, err := w.walletRepo.GetByUserAndAddress(ctx, userID, address); err != nil {
		return err
	}

	return w.uow.Do(ctx, func(txCtx context.Context) error {
		if err := w.walletRepo.SetPrimary(txCtx, userID, address); err != nil {
			return err
		}
		addr := address
		return w.userRepo.SetContactWallet(txCtx, userID, &addr)
	})
}

// Unlink removes a wallet link. Removing the primary link clears the
// contact wallet; the user picks a new primary explicitly.
func (w *WalletUsecase) Unlink(ctx context.Context, userID uuid.UUID, address string) error {
	link, err := w.walletRepo.GetByUserAndAddress(ctx, userID, address)
	if err != nil {
		return err
	}

	return w.uow.Do(ctx, func(txCtx context.Context) error {
		if err := w.walletRepo.Delete(txCtx, userID, address); err != nil {
			return err
		}
		if link.IsPrimary {
			return w.userRepo.SetContactWallet(txCtx, userID, nil)
		}
		return nil
	})
}

// List returns the user's wallet links
func (w *WalletUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.WalletLink, error) {
	return w.walletRepo.GetByUserID(ctx, userID)
}
