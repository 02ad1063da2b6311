package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/usecases"
)

type walletFixture struct {
	uow        *MockUnitOfWork
	walletRepo *MockWalletLinkRepository
	userRepo   *MockUserRepository
	chain      *MockChainReader
	uc         *usecases.WalletUsecase
}

func newWalletFixture() *walletFixture {
	f := &walletFixture{
		uow:        new(MockUnitOfWork),
		walletRepo: new(MockWalletLinkRepository),
		userRepo:   new(MockUserRepository),
		chain:      new(MockChainReader),
	}
	f.uc = usecases.NewWalletUsecase(f.uow, f.walletRepo, f.userRepo, f.chain)
	return f
}

func TestLink_InvalidAddress(t *testing.T) {
	f := newWalletFixture()
	f.chain.On("ValidateAddress", "junk").Return(domainerrors.ErrInvalidAddress)

	_, err := f.uc.Link(context.Background(), uuid.New(), &entities.LinkWalletInput{WalletAddress: "junk"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidAddress)
	f.walletRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLink_FirstWalletBecomesPrimary(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	f.chain.On("ValidateAddress", testWallet).Return(nil)
	f.walletRepo.On("GetByAddress", mock.Anything, testWallet).Return(nil, domainerrors.ErrNotFound)
	f.walletRepo.On("GetByUserID", mock.Anything, userID).Return([]*entities.WalletLink{}, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.userRepo.On("SetContactWallet", mock.Anything, userID, mock.Anything).Return(nil)

	link, err := f.uc.Link(context.Background(), userID, &entities.LinkWalletInput{WalletAddress: testWallet})

	assert.NoError(t, err)
	assert.True(t, link.IsPrimary)
	f.userRepo.AssertCalled(t, "SetContactWallet", mock.Anything, userID, mock.Anything)
}

func TestLink_SecondWalletNotPrimary(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	f.chain.On("ValidateAddress", testBuyer).Return(nil)
	f.walletRepo.On("GetByAddress", mock.Anything, testBuyer).Return(nil, domainerrors.ErrNotFound)
	f.walletRepo.On("GetByUserID", mock.Anything, userID).Return([]*entities.WalletLink{
		{UserID: userID, WalletAddress: testWallet, IsPrimary: true},
	}, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	link, err := f.uc.Link(context.Background(), userID, &entities.LinkWalletInput{WalletAddress: testBuyer})

	assert.NoError(t, err)
	assert.False(t, link.IsPrimary)
	f.userRepo.AssertNotCalled(t, "SetContactWallet", mock.Anything, mock.Anything, mock.Anything)
}

func TestLink_SameUserIdempotent(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	existing := &entities.WalletLink{ID: uuid.New(), UserID: userID, WalletAddress: testWallet, IsPrimary: true}
	f.chain.On("ValidateAddress", testWallet).Return(nil)
	f.walletRepo.On("GetByAddress", mock.Anything, testWallet).Return(existing, nil)

	link, err := f.uc.Link(context.Background(), userID, &entities.LinkWalletInput{WalletAddress: testWallet})

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, link.ID)
	f.walletRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLink_AddressHeldByOtherAccount(t *testing.T) {
	f := newWalletFixture()
	f.chain.On("ValidateAddress", testWallet).Return(nil)
	f.walletRepo.On("GetByAddress", mock.Anything, testWallet).
		Return(&entities.WalletLink{UserID: uuid.New(), WalletAddress: testWallet}, nil)

	_, err := f.uc.Link(context.Background(), uuid.New(), &entities.LinkWalletInput{WalletAddress: testWallet})

	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestSetPrimary_RefreshesContactWallet(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	f.walletRepo.On("GetByUserAndAddress", mock.Anything, userID, testBuyer).
		Return(&entities.WalletLink{UserID: userID, WalletAddress: testBuyer}, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("SetPrimary", mock.Anything, userID, testBuyer).Return(nil)
	f.userRepo.On("SetContactWallet", mock.Anything, userID, mock.Anything).Return(nil)

	err := f.uc.SetPrimary(context.Background(), userID, testBuyer)

	assert.NoError(t, err)
	f.walletRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
}

func TestSetPrimary_NotOwnedWallet(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	f.walletRepo.On("GetByUserAndAddress", mock.Anything, userID, testBuyer).
		Return(nil, domainerrors.ErrNotFound)

	err := f.uc.SetPrimary(context.Background(), userID, testBuyer)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	f.walletRepo.AssertNotCalled(t, "SetPrimary", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnlink_PrimaryClearsContactWallet(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	f.walletRepo.On("GetByUserAndAddress", mock.Anything, userID, testWallet).
		Return(&entities.WalletLink{UserID: userID, WalletAddress: testWallet, IsPrimary: true}, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Delete", mock.Anything, userID, testWallet).Return(nil)
	f.userRepo.On("SetContactWallet", mock.Anything, userID, (*string)(nil)).Return(nil)

	err := f.uc.Unlink(context.Background(), userID, testWallet)

	assert.NoError(t, err)
	f.userRepo.AssertCalled(t, "SetContactWallet", mock.Anything, userID, (*string)(nil))
}

func TestUnlink_NonPrimaryKeepsContactWallet(t *testing.T) {
	f := newWalletFixture()
	userID := uuid.New()
	f.walletRepo.On("GetByUserAndAddress", mock.Anything, userID, testBuyer).
		Return(&entities.WalletLink{UserID: userID, WalletAddress: testBuyer, IsPrimary: false}, nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.walletRepo.On("Delete", mock.Anything, userID, testBuyer).Return(nil)

	err := f.uc.Unlink(context.Background(), userID, testBuyer)

	assert.NoError(t, err)
	f.userRepo.AssertNotCalled(t, "SetContactWallet", mock.Anything, mock.Anything, mock.Anything)
}
