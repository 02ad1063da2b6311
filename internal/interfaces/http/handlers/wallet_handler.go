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

type walletService interface {
	Link(ctx context.Context, userID uuid.UUID, input *entities.LinkWalletInput) (*entities.WalletLink, error)
	SetPrimary(ctx context.Context, userID uuid.UUID, address string) error
	Unlink(ctx context.Context, userID uuid.UUID, address string) error
	List(ctx context.Context, userID uuid.UUID) ([]*entities.WalletLink, error)
}

// WalletHandler handles wallet link endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// LinkWallet attaches a wallet address to the caller's account
// POST /api/v1/wallets
func (h *WalletHandler) LinkWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input entities.LinkWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	link, err := h.walletUsecase.Link(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"wallet": link})
}

// ListWallets lists the caller's wallet links
// GET /api/v1/wallets
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wallets, err := h.walletUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if wallets == nil {
		wallets = []*entities.WalletLink{}
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// SetPrimaryWallet makes a linked wallet the primary one
// PUT /api/v1/wallets/:address/primary
func (h *WalletHandler) SetPrimaryWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	address := c.Param("address")
	if err := h.walletUsecase.SetPrimary(c.Request.Context(), userID, address); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "primary wallet updated"})
}

// UnlinkWallet removes a wallet link
// DELETE /api/v1/wallets/:address
func (h *WalletHandler) UnlinkWallet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	address := c.Param("address")
	if err := h.walletUsecase.Unlink(c.Request.Context(), userID, address); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "wallet unlinked"})
}
