package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/service"
)

// maxImportBytes bounds the import payload size
const maxImportBytes = 32 << 20

// BackupHandler handles whole-document export and import
type BackupHandler struct {
	backup *service.BackupService
	logger *zap.Logger
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backup *service.BackupService, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{backup: backup, logger: logger}
}

// Export handles GET /backup/export, sending the whole document as a JSON
// file download.
func (h *BackupHandler) Export(c *gin.Context) {
	result, err := h.backup.Export(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to export document", zap.Error(err))
		respondError(c, err, "Failed to export database")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/json", result.Data)
}

// Import handles POST /backup/import. The raw body is the exported JSON
// document. A malformed payload is a 400 with the structured import result;
// only a storage fault is a 500.
func (h *BackupHandler) Import(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.backup.Import(c.Request.Context(), payload)
	if err != nil {
		h.logger.Error("failed to import document", zap.Error(err))
		respondError(c, err, "Failed to import database")
		return
	}

	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
