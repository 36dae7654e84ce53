package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/adapters/controller/http/middlewares"
	"github.com/studyhive/studyhive-backend/internal/domain/common/errorz"
	"github.com/studyhive/studyhive-backend/pkg/logger"
)

func userID(c *gin.Context) string {
	return c.GetString(middlewares.ContextUserID)
}

// respondError maps domain errors to status codes. Internal detail never
// reaches the client; unexpected errors are logged and answered with a
// generic 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, errorz.NotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errorz.EmptyTitle), errors.Is(err, errorz.InvalidDeadline):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errorz.EmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errorz.InvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Errorf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
