package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/internal/interfaces/http/response"
	"mint-market.backend/internal/usecases"
)

const maxAvatarBytes = 5 << 20

type userService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*entities.PublicProfile, error)
	Update(ctx context.Context, userID uuid.UUID, input *entities.UpdateUserInput) (*entities.User, error)
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, data []byte, originalName, contentType string) (*entities.User, error)
}

// UserHandler handles profile endpoints
type UserHandler struct {
	userUsecase userService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// GetMe returns the caller's profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userUsecase.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// GetByWallet returns the public profile linked to a wallet address
// GET /api/v1/users/wallet/:address
func (h *UserHandler) GetByWallet(c *gin.Context) {
	profile, err := h.userUsecase.GetByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateMe applies a partial profile update
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input entities.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UploadAvatar replaces the caller's profile picture
// POST /api/v1/users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("file field is required"))
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		response.Error(c, domainerrors.BadRequest("file exceeds 5MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.userUsecase.UpdateProfilePicture(
		c.Request.Context(), userID, data,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
