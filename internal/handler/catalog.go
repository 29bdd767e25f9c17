package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
)

// ServiceHandler handles the priced service catalog endpoints
type ServiceHandler struct {
	repo   *repository.Clinic
	logger *zap.Logger
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(repo *repository.Clinic, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{repo: repo, logger: logger}
}

// Create handles POST /services
func (h *ServiceHandler) Create(c *gin.Context) {
	var input repository.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	service, err := h.repo.AddService(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to add service", zap.Error(err))
		respondError(c, err, "Failed to add service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// List handles GET /services
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.repo.GetAllServices(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		respondError(c, err, "Failed to list services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// Get handles GET /services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	service, err := h.repo.GetServiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get service", zap.Error(err))
		respondError(c, err, "Failed to get service")
		return
	}
	if service == nil {
		respondNotFound(c, "Service not found")
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete handles DELETE /services/:id
func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("failed to delete service", zap.Error(err))
		respondError(c, err, "Failed to delete service")
		return
	}

	c.Status(http.StatusNoContent)
}
