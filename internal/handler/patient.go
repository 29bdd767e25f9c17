package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
)

// PatientHandler handles patient card endpoints
type PatientHandler struct {
	repo   *repository.Clinic
	logger *zap.Logger
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(repo *repository.Clinic, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{repo: repo, logger: logger}
}

// Create handles POST /patients
func (h *PatientHandler) Create(c *gin.Context) {
	var input repository.PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	patient, err := h.repo.AddPatient(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to add patient", zap.Error(err))
		respondError(c, err, "Failed to add patient")
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// List handles GET /patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.repo.GetAllPatients(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list patients", zap.Error(err))
		respondError(c, err, "Failed to list patients")
		return
	}

	c.JSON(http.StatusOK, patients)
}

// Get handles GET /patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.repo.GetPatientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get patient", zap.Error(err))
		respondError(c, err, "Failed to get patient")
		return
	}
	if patient == nil {
		respondNotFound(c, "Patient not found")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// Delete handles DELETE /patients/:id. Deleting an unknown id is not an
// error; the operation is idempotent.
func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.repo.DeletePatient(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("failed to delete patient", zap.Error(err))
		respondError(c, err, "Failed to delete patient")
		return
	}

	c.Status(http.StatusNoContent)
}
