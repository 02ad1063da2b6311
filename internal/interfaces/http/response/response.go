package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "mint-market.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps a domain error to its HTTP status and sends it. Internal
// errors never leak their message to the client.
func Error(c *gin.Context, err error) {
	status := domainerrors.HTTPStatus(err)

	message := err.Error()
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// ErrorWithStatus sends an error response with an explicit status
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
