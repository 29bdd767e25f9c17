package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
)

// DoctorHandler handles doctor roster endpoints
type DoctorHandler struct {
	repo   *repository.Clinic
	logger *zap.Logger
}

// NewDoctorHandler creates a new DoctorHandler
func NewDoctorHandler(repo *repository.Clinic, logger *zap.Logger) *DoctorHandler {
	return &DoctorHandler{repo: repo, logger: logger}
}

// Create handles POST /doctors
func (h *DoctorHandler) Create(c *gin.Context) {
	var input repository.DoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	doctor, err := h.repo.AddDoctor(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to add doctor", zap.Error(err))
		respondError(c, err, "Failed to add doctor")
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// List handles GET /doctors
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.repo.GetAllDoctors(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list doctors", zap.Error(err))
		respondError(c, err, "Failed to list doctors")
		return
	}

	c.JSON(http.StatusOK, doctors)
}

// Get handles GET /doctors/:id
func (h *DoctorHandler) Get(c *gin.Context) {
	doctor, err := h.repo.GetDoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get doctor", zap.Error(err))
		respondError(c, err, "Failed to get doctor")
		return
	}
	if doctor == nil {
		respondNotFound(c, "Doctor not found")
		return
	}

	c.JSON(http.StatusOK, doctor)
}
