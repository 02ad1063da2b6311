package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
)

func userRouter(svc *mockUserService, userID uuid.UUID) *gin.Engine {
	h := &UserHandler{userUsecase: svc}
	r := gin.New()
	auth := r.Group("", authAs(userID))
	auth.GET("/users/me", h.GetMe)
	auth.PATCH("/users/me", h.UpdateMe)
	r.GET("/users/wallet/:address", h.GetByWallet)
	return r
}

func TestGetMeHandler(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	svc.On("GetByID", mock.Anything, userID).Return(&entities.User{
		ID:       userID,
		Email:    "alice@example.com",
		Username: null.StringFrom("alice"),
	}, nil)

	w := perform(userRouter(svc, userID), http.MethodGet, "/users/me", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestUpdateMeHandler_UsernameConflict(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	svc.On("Update", mock.Anything, userID, mock.Anything).
		Return(nil, domainerrors.Conflict("username already taken"))

	w := perform(userRouter(svc, userID), http.MethodPatch, "/users/me", jsonBody(t, gin.H{
		"username": "taken",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateMeHandler_Success(t *testing.T) {
	svc := new(mockUserService)
	userID := uuid.New()
	svc.On("Update", mock.Anything, userID, mock.MatchedBy(func(in *entities.UpdateUserInput) bool {
		return in.Username != nil && *in.Username == "newname"
	})).Return(&entities.User{ID: userID, Username: null.StringFrom("newname")}, nil)

	w := perform(userRouter(svc, userID), http.MethodPatch, "/users/me", jsonBody(t, gin.H{
		"username": "newname",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "newname")
}

func TestGetByWalletHandler(t *testing.T) {
	svc := new(mockUserService)
	ownerID := uuid.New()
	svc.On("GetByWallet", mock.Anything, handlerWallet).Return(&entities.PublicProfile{
		ID:            ownerID,
		Username:      null.StringFrom("alice"),
		WalletAddress: handlerWallet,
	}, nil)

	w := perform(userRouter(svc, uuid.New()), http.MethodGet, "/users/wallet/"+handlerWallet, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.NotContains(t, w.Body.String(), "email")
}

func TestGetByWalletHandler_Unlinked(t *testing.T) {
	svc := new(mockUserService)
	svc.On("GetByWallet", mock.Anything, handlerWallet).Return(nil, domainerrors.ErrNotFound)

	w := perform(userRouter(svc, uuid.New()), http.MethodGet, "/users/wallet/"+handlerWallet, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
