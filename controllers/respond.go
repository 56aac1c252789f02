package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stockhub/storefront-service/apperrors"
)

// respondError maps an application error to a JSON response. Foreign
// errors become an opaque 500 so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{
			"error":     appErr.Message,
			"kind":      appErr.Kind,
			"retryable": appErr.Retryable(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
