package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
)

// MedicalRecordHandler handles the append-only visit history endpoints
type MedicalRecordHandler struct {
	repo   *repository.Clinic
	logger *zap.Logger
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler
func NewMedicalRecordHandler(repo *repository.Clinic, logger *zap.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{repo: repo, logger: logger}
}

// Create handles POST /medical-records
func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var input repository.MedicalRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	record, err := h.repo.AddMedicalRecord(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to add medical record", zap.Error(err))
		respondError(c, err, "Failed to add medical record")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List handles GET /medical-records. An optional patientId query parameter
// narrows the history to one patient; an unknown patient yields an empty
// list, not an error.
func (h *MedicalRecordHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if patientID := c.Query("patientId"); patientID != "" {
		records, err := h.repo.GetMedicalRecordsByPatient(ctx, patientID)
		if err != nil {
			h.logger.Error("failed to list medical records", zap.Error(err))
			respondError(c, err, "Failed to list medical records")
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	records, err := h.repo.GetAllMedicalRecords(ctx)
	if err != nil {
		h.logger.Error("failed to list medical records", zap.Error(err))
		respondError(c, err, "Failed to list medical records")
		return
	}

	c.JSON(http.StatusOK, records)
}
