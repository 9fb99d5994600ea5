package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medrec/records-gateway/internal/repository"
)

// Handler serves the operational endpoints.
type Handler struct {
	store repository.RecordStore
}

func NewHandler(store repository.RecordStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

// ReadinessCheck round-trips the database the same way a query would:
// one connection, one statement, closed immediately.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if _, err := h.store.Select(c.Request.Context(), "SELECT 1"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"time":   time.Now(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now(),
	})
}
