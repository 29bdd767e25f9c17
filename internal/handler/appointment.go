package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/pkg/model"
)

// AppointmentHandler handles appointment scheduling endpoints
type AppointmentHandler struct {
	repo   *repository.Clinic
	logger *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(repo *repository.Clinic, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{repo: repo, logger: logger}
}

// statusUpdateRequest is the body of a status patch
type statusUpdateRequest struct {
	Status string `json:"status"`
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var input repository.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	appointment, err := h.repo.AddAppointment(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to add appointment", zap.Error(err))
		respondError(c, err, "Failed to add appointment")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// List handles GET /appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.repo.GetAllAppointments(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", zap.Error(err))
		respondError(c, err, "Failed to list appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// UpdateStatus handles PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	appointment, err := h.repo.UpdateAppointmentStatus(c.Request.Context(), c.Param("id"), model.AppointmentStatus(req.Status))
	if err != nil {
		h.logger.Error("failed to update appointment status", zap.Error(err))
		respondError(c, err, "Failed to update appointment status")
		return
	}
	if appointment == nil {
		respondNotFound(c, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, appointment)
}
