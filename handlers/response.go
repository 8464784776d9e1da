package handlers

import (
	"errors"
	"net/http"

	"guidedigest-backend/models"
	"guidedigest-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondOutcome writes a service outcome. Warnings and errors keep the
// error envelope but also carry data for clients that want it.
func respondOutcome(c *gin.Context, outcome models.Outcome, data interface{}) {
	switch outcome.Level {
	case models.OutcomeOK:
		respondOK(c, http.StatusOK, data)
	case models.OutcomeWarning:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_WARNING",
				"message": outcome.Message,
			},
			"data": data,
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MODEL_ERROR",
				"message": outcome.Message,
			},
			"data": data,
		})
	}
}

// parseSessionID reads the :id path parameter, writing a 400 on failure.
func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "Invalid session ID format")
		return uuid.UUID{}, false
	}
	return id, true
}

// respondRepositoryError maps session lookup failures.
func respondRepositoryError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrSessionNotFound) {
		respondError(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found")
		return
	}
	respondError(c, http.StatusInternalServerError, "SESSION_ERROR", err.Error())
}
