package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/interfaces/http/response"
	"mint-market.backend/internal/usecases"
)

type nftService interface {
	CreateDraft(ctx context.Context, userID uuid.UUID, input *entities.CreateDraftInput) (*entities.DraftNFT, error)
	GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*entities.DraftNFT, error)
	ListDrafts(ctx context.Context, userID uuid.UUID, status entities.DraftStatus) ([]*entities.DraftNFT, error)
	DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error
	FinalizeMint(ctx context.Context, userID, draftID uuid.UUID, input *entities.FinalizeMintInput) (*entities.NFTListing, error)
	ListNFT(ctx context.Context, userID uuid.UUID, input *entities.ListNFTInput) (*entities.NFTListing, error)
	Delist(ctx context.Context, userID uuid.UUID, mintAddress string) (*entities.NFTListing, error)
	Purchase(ctx context.Context, mintAddress string, input *entities.PurchaseInput) (*entities.PurchaseRecord, error)
	GetByMint(ctx context.Context, mintAddress string) (*entities.NFTDetail, error)
	Marketplace(ctx context.Context, name string) ([]*entities.NFTListing, error)
	ListOwned(ctx context.Context, userID uuid.UUID, listedOnly bool) ([]*entities.NFTListing, error)
	ListOwnedByWallet(ctx context.Context, walletAddress string, listedOnly bool) ([]*entities.NFTListing, error)
	PurchaseHistory(ctx context.Context, mintAddress string) ([]*entities.PurchaseRecord, error)
}

type verifierService interface {
	VerifyOwnership(ctx context.Context, walletAddress, mintAddress string) (bool, error)
}

// NFTHandler handles draft, listing and purchase endpoints
type NFTHandler struct {
	nftUsecase nftService
	verifier   verifierService
}

// NewNFTHandler creates a new NFT handler
func NewNFTHandler(nftUsecase *usecases.NFTUsecase, verifier *usecases.VerifierUsecase) *NFTHandler {
	return &NFTHandler{
		nftUsecase: nftUsecase,
		verifier:   verifier,
	}
}

// CreateDraft records a pre-mint intent
// POST /api/v1/nfts/drafts
func (h *NFTHandler) CreateDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input entities.CreateDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	draft, err := h.nftUsecase.CreateDraft(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, draft)
}

// ListDrafts lists the caller's drafts
// GET /api/v1/nfts/drafts?status=draft
func (h *NFTHandler) ListDrafts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	status := entities.DraftStatus(c.Query("status"))
	drafts, err := h.nftUsecase.ListDrafts(c.Request.Context(), userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	if drafts == nil {
		drafts = []*entities.DraftNFT{}
	}

	response.Success(c, http.StatusOK, gin.H{"drafts": drafts})
}

// GetDraft returns one of the caller's drafts
// GET /api/v1/nfts/drafts/:id
func (h *NFTHandler) GetDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid draft id"))
		return
	}

	draft, err := h.nftUsecase.GetDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, draft)
}

// DeleteDraft removes a never-minted draft
// DELETE /api/v1/nfts/drafts/:id
func (h *NFTHandler) DeleteDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid draft id"))
		return
	}

	if err := h.nftUsecase.DeleteDraft(c.Request.Context(), userID, draftID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "draft deleted"})
}

// FinalizeMint promotes a draft to a listed NFT after the mint landed
// POST /api/v1/nfts/drafts/:id/finalize
func (h *NFTHandler) FinalizeMint(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid draft id"))
		return
	}

	var input entities.FinalizeMintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	listing, err := h.nftUsecase.FinalizeMint(c.Request.Context(), userID, draftID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, listing)
}

// ListNFT lists or relists a minted NFT for sale
// POST /api/v1/nfts/list
func (h *NFTHandler) ListNFT(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input entities.ListNFTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	listing, err := h.nftUsecase.ListNFT(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listing)
}

// Delist takes the caller's NFT off the marketplace
// POST /api/v1/nfts/:mint/delist
func (h *NFTHandler) Delist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	listing, err := h.nftUsecase.Delist(c.Request.Context(), userID, c.Param("mint"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, listing)
}

// Purchase records a completed on-chain sale
// POST /api/v1/nfts/:mint/purchase
func (h *NFTHandler) Purchase(c *gin.Context) {
	var input entities.PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := h.nftUsecase.Purchase(c.Request.Context(), c.Param("mint"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// GetNFT returns the ledger row of a mint merged with chain metadata
// GET /api/v1/nfts/:mint
func (h *NFTHandler) GetNFT(c *gin.Context) {
	detail, err := h.nftUsecase.GetByMint(c.Request.Context(), c.Param("mint"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// PurchaseHistory returns the purchase audit trail of a mint
// GET /api/v1/nfts/:mint/history
func (h *NFTHandler) PurchaseHistory(c *gin.Context) {
	records, err := h.nftUsecase.PurchaseHistory(c.Request.Context(), c.Param("mint"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if records == nil {
		records = []*entities.PurchaseRecord{}
	}

	response.Success(c, http.StatusOK, gin.H{"purchases": records})
}

// VerifyOwnership answers whether a wallet currently holds a mint
// GET /api/v1/nfts/:mint/verify?wallet=<address>
func (h *NFTHandler) VerifyOwnership(c *gin.Context) {
	wallet := c.Query("wallet")
	if wallet == "" {
		response.Error(c, domainerrors.BadRequest("wallet query parameter is required"))
		return
	}

	verified, err := h.verifier.VerifyOwnership(c.Request.Context(), wallet, c.Param("mint"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"verified": verified})
}

// Marketplace returns the public feed
// GET /api/v1/marketplace?name=<substring>
func (h *NFTHandler) Marketplace(c *gin.Context) {
	listings, err := h.nftUsecase.Marketplace(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if listings == nil {
		listings = []*entities.NFTListing{}
	}

	response.Success(c, http.StatusOK, gin.H{"nfts": listings})
}

// ListOwned returns the caller's NFTs
// GET /api/v1/nfts/owned?listed=true
func (h *NFTHandler) ListOwned(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	listedOnly := c.Query("listed") == "true"
	listings, err := h.nftUsecase.ListOwned(c.Request.Context(), userID, listedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	if listings == nil {
		listings = []*entities.NFTListing{}
	}

	response.Success(c, http.StatusOK, gin.H{"nfts": listings})
}

// ListByWallet returns the NFTs held by a wallet address
// GET /api/v1/users/wallet/:address/nfts?listed=true
func (h *NFTHandler) ListByWallet(c *gin.Context) {
	listedOnly := c.Query("listed") == "true"
	listings, err := h.nftUsecase.ListOwnedByWallet(c.Request.Context(), c.Param("address"), listedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	if listings == nil {
		listings = []*entities.NFTListing{}
	}

	response.Success(c, http.StatusOK, gin.H{"nfts": listings})
}
