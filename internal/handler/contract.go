package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/pkg/model"
)

// ContractHandler handles service contract endpoints
type ContractHandler struct {
	repo   *repository.Clinic
	logger *zap.Logger
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(repo *repository.Clinic, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{repo: repo, logger: logger}
}

// paymentUpdateRequest is the body of a payment status patch
type paymentUpdateRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Create handles POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var input repository.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	contract, err := h.repo.AddContract(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("failed to add contract", zap.Error(err))
		respondError(c, err, "Failed to add contract")
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// List handles GET /contracts
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.repo.GetAllContracts(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list contracts", zap.Error(err))
		respondError(c, err, "Failed to list contracts")
		return
	}

	c.JSON(http.StatusOK, contracts)
}

// Get handles GET /contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.repo.GetContractByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to get contract", zap.Error(err))
		respondError(c, err, "Failed to get contract")
		return
	}
	if contract == nil {
		respondNotFound(c, "Contract not found")
		return
	}

	c.JSON(http.StatusOK, contract)
}

// UpdateStatus handles PATCH /contracts/:id/status
func (h *ContractHandler) UpdateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	contract, err := h.repo.UpdateContractStatus(c.Request.Context(), c.Param("id"), model.ContractStatus(req.Status))
	if err != nil {
		h.logger.Error("failed to update contract status", zap.Error(err))
		respondError(c, err, "Failed to update contract status")
		return
	}
	if contract == nil {
		respondNotFound(c, "Contract not found")
		return
	}

	c.JSON(http.StatusOK, contract)
}

// UpdatePayment handles PATCH /contracts/:id/payment
func (h *ContractHandler) UpdatePayment(c *gin.Context) {
	var req paymentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	contract, err := h.repo.UpdateContractPaymentStatus(c.Request.Context(), c.Param("id"), model.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.logger.Error("failed to update contract payment status", zap.Error(err))
		respondError(c, err, "Failed to update contract payment status")
		return
	}
	if contract == nil {
		respondNotFound(c, "Contract not found")
		return
	}

	c.JSON(http.StatusOK, contract)
}
