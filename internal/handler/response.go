package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modan/fas/internal/logic"
)

// respondError maps logic-layer sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; details stay in the logs.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrStateConflict), errors.Is(err, logic.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
