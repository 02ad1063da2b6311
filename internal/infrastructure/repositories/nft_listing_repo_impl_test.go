package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	domainRepos "mint-market.backend/internal/domain/repositories"
)

func newListing(mint, name string, listed bool) *entities.NFTListing {
	l := &entities.NFTListing{
		MintAddress:        mint,
		Name:               name,
		OwnerWalletAddress: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		IsListed:           listed,
	}
	if listed {
		l.Price = null.StringFrom("2.5")
	}
	return l
}

func TestNFTListingRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	l := newListing("mint-a", "Sunrise", true)
	l.OwnerUserID = &ownerID
	require.NoError(t, repo.Create(ctx, l))
	require.NotEqual(t, uuid.Nil, l.ID)

	byMint, err := repo.GetByMint(ctx, "mint-a")
	require.NoError(t, err)
	require.Equal(t, l.ID, byMint.ID)
	require.Equal(t, "2.5", byMint.Price.String)
	require.Equal(t, ownerID, *byMint.OwnerUserID)

	byID, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, "mint-a", byID.MintAddress)

	locked, err := repo.GetByMintForUpdate(ctx, "mint-a")
	require.NoError(t, err)
	require.Equal(t, l.ID, locked.ID)
}

func TestNFTListingRepository_MintAddressUnique(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newListing("mint-dup", "First", true)))
	err := repo.Create(ctx, newListing("mint-dup", "Second", true))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestNFTListingRepository_UpdateTransfersOwnership(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	l := newListing("mint-b", "Moon", true)
	require.NoError(t, repo.Create(ctx, l))

	buyerID := uuid.New()
	l.IsListed = false
	l.Price = null.String{}
	l.OwnerWalletAddress = "9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde"
	l.OwnerUserID = &buyerID
	require.NoError(t, repo.Update(ctx, l))

	got, err := repo.GetByMint(ctx, "mint-b")
	require.NoError(t, err)
	require.False(t, got.IsListed)
	require.False(t, got.Price.Valid)
	require.Equal(t, "9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde", got.OwnerWalletAddress)
	require.Equal(t, buyerID, *got.OwnerUserID)
}

func TestNFTListingRepository_UpdateUnknownMint(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)

	err := repo.Update(context.Background(), newListing("mint-missing", "Ghost", true))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNFTListingRepository_ListRecentDelistedWindow(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	live := newListing("mint-live", "Live", true)
	fresh := newListing("mint-fresh", "Fresh Delist", false)
	stale := newListing("mint-stale", "Stale Delist", false)
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, fresh))
	require.NoError(t, repo.Create(ctx, stale))
	mustExec(t, db, "UPDATE nfts SET updated_at = ? WHERE mint_address = ?",
		time.Now().Add(-8*24*time.Hour), "mint-stale")

	feed, err := repo.List(ctx, domainRepos.ListingFilter{RecentDelisted: true})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, "mint-live", feed[0].MintAddress, "listed rows come first")
	require.Equal(t, "mint-fresh", feed[1].MintAddress)

	listedOnly, err := repo.List(ctx, domainRepos.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, listedOnly, 1)
	require.Equal(t, "mint-live", listedOnly[0].MintAddress)
}

func TestNFTListingRepository_ListNameFilter(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newListing("mint-1", "Solar Flare", true)))
	require.NoError(t, repo.Create(ctx, newListing("mint-2", "Lunar Tide", true)))

	feed, err := repo.List(ctx, domainRepos.ListingFilter{Name: "olar"})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "Solar Flare", feed[0].Name)
}

func TestNFTListingRepository_ListByOwner(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	listed := newListing("mint-o1", "Owned Listed", true)
	listed.OwnerUserID = &ownerID
	held := newListing("mint-o2", "Owned Held", false)
	held.OwnerUserID = &ownerID
	require.NoError(t, repo.Create(ctx, listed))
	require.NoError(t, repo.Create(ctx, held))
	require.NoError(t, repo.Create(ctx, newListing("mint-o3", "Foreign", true)))

	all, err := repo.ListByOwner(ctx, ownerID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyListed, err := repo.ListByOwner(ctx, ownerID, true)
	require.NoError(t, err)
	require.Len(t, onlyListed, 1)
	require.Equal(t, "mint-o1", onlyListed[0].MintAddress)
}

func TestNFTListingRepository_ListByWallet(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	held := newListing("mint-w1", "Held", false)
	listed := newListing("mint-w2", "Listed", true)
	foreign := newListing("mint-w3", "Foreign", true)
	foreign.OwnerWalletAddress = "9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde"
	require.NoError(t, repo.Create(ctx, held))
	require.NoError(t, repo.Create(ctx, listed))
	require.NoError(t, repo.Create(ctx, foreign))

	all, err := repo.ListByWallet(ctx, held.OwnerWalletAddress, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	onlyListed, err := repo.ListByWallet(ctx, held.OwnerWalletAddress, true)
	require.NoError(t, err)
	require.Len(t, onlyListed, 1)
	require.Equal(t, "mint-w2", onlyListed[0].MintAddress)

	empty, err := repo.ListByWallet(ctx, "unknown-wallet", false)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestNFTListingRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByMint(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByMintForUpdate(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestNFTListingRepository_ReadsCarryOwnerUsername(t *testing.T) {
	db := newTestDB(t)
	createUsersTable(t, db)
	createNFTsTable(t, db)
	repo := NewNFTListingRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	mustExec(t, db, "INSERT INTO users (id, email, username, hashed_password) VALUES (?, ?, ?, ?)",
		ownerID.String(), "alice@example.com", "alice", "x")

	linked := newListing("mint-linked", "Linked", true)
	linked.OwnerUserID = &ownerID
	require.NoError(t, repo.Create(ctx, linked))

	orphan := newListing("mint-orphan", "Orphan", true)
	orphan.OwnerWalletAddress = "9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde"
	require.NoError(t, repo.Create(ctx, orphan))

	byMint, err := repo.GetByMint(ctx, "mint-linked")
	require.NoError(t, err)
	require.Equal(t, "alice", byMint.OwnerUsername.String)

	byID, err := repo.GetByID(ctx, linked.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.OwnerUsername.String)

	feed, err := repo.List(ctx, domainRepos.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, n := range feed {
		if n.MintAddress == "mint-linked" {
			require.Equal(t, "alice", n.OwnerUsername.String)
		} else {
			require.False(t, n.OwnerUsername.Valid)
		}
	}

	byOwner, err := repo.ListByOwner(ctx, ownerID, false)
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	require.Equal(t, "alice", byOwner[0].OwnerUsername.String)

	held, err := repo.ListByWallet(ctx, linked.OwnerWalletAddress, false)
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.Equal(t, "alice", held[0].OwnerUsername.String)
}
