package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/domain/repositories"
	"mint-market.backend/pkg/logger"
)

// NFTUsecase drives the listing ledger: draft intents, the mint-finalize
// transition, list/relist, purchases and the marketplace feeds. All state
// transitions that touch more than one row run inside a UnitOfWork.
type NFTUsecase struct {
	uow          repositories.UnitOfWork
	nftRepo      repositories.NFTListingRepository
	draftRepo    repositories.DraftNFTRepository
	purchaseRepo repositories.PurchaseRepository
	walletRepo   repositories.WalletLinkRepository
	userRepo     repositories.UserRepository
	verifier     *VerifierUsecase
	metadata     *MetadataUsecase
	media        BlobStore
}

// NewNFTUsecase creates a new NFT usecase
func NewNFTUsecase(
	uow repositories.UnitOfWork,
	nftRepo repositories.NFTListingRepository,
	draftRepo repositories.DraftNFTRepository,
	purchaseRepo repositories.PurchaseRepository,
	walletRepo repositories.WalletLinkRepository,
	userRepo repositories.UserRepository,
	verifier *VerifierUsecase,
	metadata *MetadataUsecase,
	media BlobStore,
) *NFTUsecase {
	return &NFTUsecase{
		uow:          uow,
		nftRepo:      nftRepo,
		draftRepo:    draftRepo,
		purchaseRepo: purchaseRepo,
		walletRepo:   walletRepo,
		userRepo:     userRepo,
		verifier:     verifier,
		metadata:     metadata,
		media:        media,
	}
}

// CreateDraft records a pre-mint intent for the user
func (u *NFTUsecase) CreateDraft(ctx context.Context, userID uuid.UUID, input *entities.CreateDraftInput) (*entities.DraftNFT, error) {
	if _, err := parsePrice(input.Price); err != nil {
		return nil, err
	}

	draft := &entities.DraftNFT{
		CreatorUserID:   userID,
		Name:            input.Name,
		Symbol:          nullIfEmpty(input.Symbol),
		Description:     nullIfEmpty(input.Description),
		ImageURL:        input.ImageURL,
		MetadataJSONURL: input.MetadataJSONURL,
		Price:           input.Price,
		Attributes:      nullIfEmpty(input.Attributes),
		CollectionName:  nullIfEmpty(input.CollectionName),
		Status:          entities.DraftStatusDraft,
	}
	if err := u.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft returns a draft owned by the user
func (u *NFTUsecase) GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*entities.DraftNFT, error) {
	draft, err := u.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.CreatorUserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	return draft, nil
}

// ListDrafts lists the user's drafts, optionally filtered by status
func (u *NFTUsecase) ListDrafts(ctx context.Context, userID uuid.UUID, status entities.DraftStatus) ([]*entities.DraftNFT, error) {
	return u.draftRepo.ListByCreator(ctx, userID, status)
}

// DeleteDraft removes a never-minted draft and cleans up its media blobs.
// Blob cleanup is best effort; the row deletion is the authoritative part.
func (u *NFTUsecase) DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error {
	draft, err := u.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft.CreatorUserID != userID {
		return domainerrors.ErrForbidden
	}
	if draft.Status != entities.DraftStatusDraft {
		return domainerrors.Forbidden("finalized drafts cannot be deleted")
	}

	if err := u.draftRepo.Delete(ctx, draftID); err != nil {
		return err
	}

	for _, url := range []string{draft.ImageURL, draft.MetadataJSONURL} {
		key := u.media.KeyFromURL(url)
		if key == "" {
			continue
		}
		if err := u.media.Delete(ctx, key); err != nil {
			logger.Warn(ctx, "draft blob cleanup failed",
				zap.String("draft_id", draftID.String()),
				zap.String("key", key),
				zap.Error(err))
		}
	}
	return nil
}

// FinalizeMint transitions a draft to finalized and creates its ledger row
// after the client-side mint transaction landed. The draft must exist and
// belong to the caller before anything else is checked, then ownership of
// the mint by the caller's wallet is verified on-chain. The draft update
// and the listing insert commit atomically.
func (u *NFTUsecase) FinalizeMint(ctx context.Context, userID, draftID uuid.UUID, input *entities.FinalizeMintInput) (*entities.NFTListing, error) {
	draft, err := u.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.CreatorUserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	if draft.Status != entities.DraftStatusDraft {
		return nil, domainerrors.Conflict("draft already finalized")
	}

	if err := u.requireLinkedWallet(ctx, userID, input.OwnerWalletAddress); err != nil {
		return nil, err
	}

	owned, err := u.verifier.VerifyOwnership(ctx, input.OwnerWalletAddress, input.MintAddress)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, fmt.Errorf("%w: wallet %s does not hold mint %s",
			domainerrors.ErrNotVerified, input.OwnerWalletAddress, input.MintAddress)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var listing *entities.NFTListing
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		// MarkFinalized flips status exactly once, so a concurrent
		// finalize that won the race surfaces here as Conflict.
		if err := u.draftRepo.MarkFinalized(txCtx, draftID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.Conflict("draft already finalized")
			}
			return err
		}

		listing = &entities.NFTListing{
			MintAddress:        input.MintAddress,
			Name:               draft.Name,
			Symbol:             draft.Symbol,
			Description:        draft.Description,
			ImageURL:           null.StringFrom(draft.ImageURL),
			MetadataURL:        null.StringFrom(draft.MetadataJSONURL),
			Attributes:         draft.Attributes,
			CollectionName:     draft.CollectionName,
			Price:              null.StringFrom(draft.Price),
			IsListed:           true,
			OwnerWalletAddress: input.OwnerWalletAddress,
			OwnerUserID:        &userID,
			OwnerUsername:      user.Username,
		}
		return u.nftRepo.Create(txCtx, listing)
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// ListNFT lists an already-minted NFT for sale, or relists one that was
// sold or delisted. One ledger row exists per mint, so listing is an
// upsert keyed on the mint address and never duplicates rows.
func (u *NFTUsecase) ListNFT(ctx context.Context, userID uuid.UUID, input *entities.ListNFTInput) (*entities.NFTListing, error) {
	if _, err := parsePrice(input.Price); err != nil {
		return nil, err
	}
	if err := u.requireLinkedWallet(ctx, userID, input.OwnerWalletAddress); err != nil {
		return nil, err
	}

	owned, err := u.verifier.VerifyOwnership(ctx, input.OwnerWalletAddress, input.MintAddress)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, fmt.Errorf("%w: wallet %s does not hold mint %s",
			domainerrors.ErrNotVerified, input.OwnerWalletAddress, input.MintAddress)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Externally minted NFTs arrive without a ledger row; pull their name
	// from chain metadata when possible. Best effort only.
	name := input.MintAddress
	var symbol null.String
	if meta, err := u.metadata.Resolve(ctx, input.MintAddress); err == nil {
		if meta.Name != "" {
			name = meta.Name
		}
		symbol = nullIfEmpty(meta.Symbol)
	}

	var listing *entities.NFTListing
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.nftRepo.GetByMint(txCtx, input.MintAddress)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if existing == nil {
			listing = &entities.NFTListing{
				MintAddress:        input.MintAddress,
				Name:               name,
				Symbol:             symbol,
				ImageURL:           nullIfEmpty(input.ImageURL),
				MetadataURL:        nullIfEmpty(input.MetadataURL),
				CollectionName:     nullIfEmpty(input.CollectionName),
				Price:              null.StringFrom(input.Price),
				IsListed:           true,
				OwnerWalletAddress: input.OwnerWalletAddress,
				OwnerUserID:        &userID,
				OwnerUsername:      user.Username,
			}
			return u.nftRepo.Create(txCtx, listing)
		}

		existing.Price = null.StringFrom(input.Price)
		existing.IsListed = true
		existing.OwnerWalletAddress = input.OwnerWalletAddress
		existing.OwnerUserID = &userID
		existing.OwnerUsername = user.Username
		if input.ImageURL != "" {
			existing.ImageURL = null.StringFrom(input.ImageURL)
		}
		if input.MetadataURL != "" {
			existing.MetadataURL = null.StringFrom(input.MetadataURL)
		}
		if input.CollectionName != "" {
			existing.CollectionName = null.StringFrom(input.CollectionName)
		}
		listing = existing
		return u.nftRepo.Update(txCtx, existing)
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// Delist takes the user's NFT off the marketplace without deleting the row
func (u *NFTUsecase) Delist(ctx context.Context, userID uuid.UUID, mintAddress string) (*entities.NFTListing, error) {
	var listing *entities.NFTListing
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.nftRepo.GetByMintForUpdate(txCtx, mintAddress)
		if err != nil {
			return err
		}
		if existing.OwnerUserID == nil || *existing.OwnerUserID != userID {
			return domainerrors.ErrForbidden
		}

		existing.IsListed = false
		existing.Price = null.String{}
		listing = existing
		return u.nftRepo.Update(txCtx, existing)
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// Purchase records a completed on-chain sale. The listing row is locked
// for the duration of the transaction so concurrent buyers serialize; the
// unique transaction signature makes replays idempotent.
func (u *NFTUsecase) Purchase(ctx context.Context, mintAddress string, input *entities.PurchaseInput) (*entities.PurchaseRecord, error) {
	paid, err := parsePrice(input.PaidPrice)
	if err != nil {
		return nil, err
	}

	var record *entities.PurchaseRecord
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		// A replayed signature must answer Conflict even after the first
		// purchase already flipped the row to unlisted.
		if _, err := u.purchaseRepo.GetBySignature(txCtx, input.TransactionSignature); err == nil {
			return domainerrors.ErrAlreadyProcessed
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		listing, err := u.nftRepo.GetByMintForUpdate(txCtx, mintAddress)
		if err != nil {
			return err
		}
		if !listing.IsListed || !listing.Price.Valid {
			return domainerrors.ErrAlreadySold
		}

		listed, err := parsePrice(listing.Price.String)
		if err != nil {
			return err
		}
		if !priceCovers(paid, listed) {
			return fmt.Errorf("%w: paid %s, listed %s",
				domainerrors.ErrInvalidPrice, input.PaidPrice, listing.Price.String)
		}

		record = &entities.PurchaseRecord{
			NFTID:                listing.ID,
			SellerWalletAddress:  listing.OwnerWalletAddress,
			BuyerWalletAddress:   input.BuyerWalletAddress,
			Price:                listing.Price.String,
			TransactionSignature: input.TransactionSignature,
		}
		if err := u.purchaseRepo.Create(txCtx, record); err != nil {
			return err
		}

		listing.IsListed = false
		listing.Price = null.String{}
		listing.OwnerWalletAddress = input.BuyerWalletAddress
		listing.OwnerUserID = nil
		listing.OwnerUsername = null.String{}
		if link, err := u.walletRepo.GetByAddress(txCtx, input.BuyerWalletAddress); err == nil {
			listing.OwnerUserID = &link.UserID
			if buyer, err := u.userRepo.GetByID(txCtx, link.UserID); err == nil {
				listing.OwnerUsername = buyer.Username
			}
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return u.nftRepo.Update(txCtx, listing)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase recorded",
		zap.String("mint", mintAddress),
		zap.String("buyer", input.BuyerWalletAddress),
		zap.String("signature", input.TransactionSignature))
	return record, nil
}

// GetByMint returns the ledger row of a mint merged with its resolved
// chain metadata. Chain resolution is best effort so a dead RPC node does
// not hide the database state.
func (u *NFTUsecase) GetByMint(ctx context.Context, mintAddress string) (*entities.NFTDetail, error) {
	listing, err := u.nftRepo.GetByMint(ctx, mintAddress)
	if err != nil {
		return nil, err
	}

	detail := &entities.NFTDetail{Listing: listing}
	chain, err := u.metadata.Resolve(ctx, mintAddress)
	if err != nil {
		logger.Warn(ctx, "chain metadata unavailable",
			zap.String("mint", mintAddress),
			zap.Error(err))
		return detail, nil
	}
	detail.Chain = chain
	return detail, nil
}

// Marketplace returns the public feed: everything currently listed plus
// recently delisted rows, optionally filtered by name.
func (u *NFTUsecase) Marketplace(ctx context.Context, name string) ([]*entities.NFTListing, error) {
	return u.nftRepo.List(ctx, repositories.ListingFilter{
		Name:           name,
		RecentDelisted: true,
	})
}

// ListOwned returns the NFTs whose ledger owner is the user
func (u *NFTUsecase) ListOwned(ctx context.Context, userID uuid.UUID, listedOnly bool) ([]*entities.NFTListing, error) {
	return u.nftRepo.ListByOwner(ctx, userID, listedOnly)
}

// ListOwnedByWallet returns the NFTs whose ledger owner is the wallet
// address, whether or not it is linked to an account
func (u *NFTUsecase) ListOwnedByWallet(ctx context.Context, walletAddress string, listedOnly bool) ([]*entities.NFTListing, error) {
	return u.nftRepo.ListByWallet(ctx, walletAddress, listedOnly)
}

// PurchaseHistory returns the purchase audit trail of a mint, newest first
func (u *NFTUsecase) PurchaseHistory(ctx context.Context, mintAddress string) ([]*entities.PurchaseRecord, error) {
	listing, err := u.nftRepo.GetByMint(ctx, mintAddress)
	if err != nil {
		return nil, err
	}
	return u.purchaseRepo.ListByNFT(ctx, listing.ID)
}

// requireLinkedWallet checks that the wallet address belongs to the user
func (u *NFTUsecase) requireLinkedWallet(ctx context.Context, userID uuid.UUID, address string) error {
	_, err := u.walletRepo.GetByUserAndAddress(ctx, userID, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", domainerrors.ErrWalletNotLinked, address)
		}
		return err
	}
	return nil
}

func nullIfEmpty(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
