package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/service"
)

// ReportHandler handles report generation endpoints. Each report has a
// JSON summary form and a downloadable CSV form.
type ReportHandler struct {
	reports *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Patients handles GET /reports/patients
func (h *ReportHandler) Patients(c *gin.Context) {
	report, err := h.reports.Patients(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build patients report", zap.Error(err))
		respondError(c, err, "Failed to build patients report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// PatientsCSV handles GET /reports/patients/csv
func (h *ReportHandler) PatientsCSV(c *gin.Context) {
	data, filename, err := h.reports.PatientsCSV(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build patients CSV", zap.Error(err))
		respondError(c, err, "Failed to build patients report")
		return
	}

	writeCSVAttachment(c, filename, data)
}

// Financial handles GET /reports/financial
func (h *ReportHandler) Financial(c *gin.Context) {
	report, err := h.reports.Financial(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build financial report", zap.Error(err))
		respondError(c, err, "Failed to build financial report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// FinancialCSV handles GET /reports/financial/csv
func (h *ReportHandler) FinancialCSV(c *gin.Context) {
	data, filename, err := h.reports.FinancialCSV(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build financial CSV", zap.Error(err))
		respondError(c, err, "Failed to build financial report")
		return
	}

	writeCSVAttachment(c, filename, data)
}

// Appointments handles GET /reports/appointments
func (h *ReportHandler) Appointments(c *gin.Context) {
	report, err := h.reports.Appointments(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to build appointments report", zap.Error(err))
		respondError(c, err, "Failed to build appointments report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// writeCSVAttachment sends CSV bytes as a file download. The charset matters:
// the payload starts with a UTF-8 byte order mark so spreadsheet tools decode
// it correctly.
func writeCSVAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
