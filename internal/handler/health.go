package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/storage"
)

// HealthHandler reports process and store health
type HealthHandler struct {
	store  storage.DocumentStore
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store storage.DocumentStore, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// Check handles GET /health. It probes the document store; an absent
// document is still healthy, only a store fault degrades the status.
func (h *HealthHandler) Check(c *gin.Context) {
	_, _, err := h.store.Load(c.Request.Context(), storage.DatabaseKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}
