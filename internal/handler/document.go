package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/pdf"
	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/pkg/model"
)

// DocumentHandler renders printable PDFs for appointments and contracts.
// Dangling references are tolerated the same way the reports tolerate them:
// the missing party renders empty instead of failing the download.
type DocumentHandler struct {
	repo      *repository.Clinic
	generator *pdf.Generator
	logger    *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(repo *repository.Clinic, generator *pdf.Generator, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{repo: repo, generator: generator, logger: logger}
}

// Referral handles GET /documents/referrals/:appointmentId
func (h *DocumentHandler) Referral(c *gin.Context) {
	ctx := c.Request.Context()
	appointmentID := c.Param("appointmentId")

	appointments, err := h.repo.GetAllAppointments(ctx)
	if err != nil {
		h.logger.Error("failed to load appointments", zap.Error(err))
		respondError(c, err, "Failed to generate referral")
		return
	}

	var appointment *model.Appointment
	for i := range appointments {
		if appointments[i].ID == appointmentID {
			appointment = &appointments[i]
			break
		}
	}
	if appointment == nil {
		respondNotFound(c, "Appointment not found")
		return
	}

	patient, err := h.repo.GetPatientByID(ctx, appointment.PatientID)
	if err != nil {
		respondError(c, err, "Failed to generate referral")
		return
	}
	doctor, err := h.repo.GetDoctorByID(ctx, appointment.DoctorID)
	if err != nil {
		respondError(c, err, "Failed to generate referral")
		return
	}

	data := pdf.ReferralData{
		Number:   referralNumber(appointment.ID),
		IssuedAt: appointment.CreatedAt,
		Patient:  patient,
		Doctor:   doctor,
		Date:     appointment.Date,
		Time:     appointment.Time,
		Reason:   appointment.Reason,
	}

	rendered, err := h.generator.Referral(data)
	if err != nil {
		h.logger.Error("failed to render referral", zap.Error(err))
		respondError(c, err, "Failed to generate referral")
		return
	}

	writePDFAttachment(c, pdf.ReferralFilename(patient, appointment.Date), rendered)
}

// Contract handles GET /documents/contracts/:contractId
func (h *DocumentHandler) Contract(c *gin.Context) {
	ctx := c.Request.Context()

	contract, err := h.repo.GetContractByID(ctx, c.Param("contractId"))
	if err != nil {
		h.logger.Error("failed to load contract", zap.Error(err))
		respondError(c, err, "Failed to generate contract document")
		return
	}
	if contract == nil {
		respondNotFound(c, "Contract not found")
		return
	}

	patient, err := h.repo.GetPatientByID(ctx, contract.PatientID)
	if err != nil {
		respondError(c, err, "Failed to generate contract document")
		return
	}

	all, err := h.repo.GetAllServices(ctx)
	if err != nil {
		respondError(c, err, "Failed to generate contract document")
		return
	}
	services := make([]model.Service, 0, len(contract.ServiceIDs))
	for _, serviceID := range contract.ServiceIDs {
		for _, svc := range all {
			if svc.ID == serviceID {
				services = append(services, svc)
				break
			}
		}
	}

	rendered, err := h.generator.ServiceContract(pdf.ContractData{
		Contract: contract,
		Patient:  patient,
		Services: services,
	})
	if err != nil {
		h.logger.Error("failed to render contract document", zap.Error(err))
		respondError(c, err, "Failed to generate contract document")
		return
	}

	writePDFAttachment(c, pdf.ContractFilename(contract), rendered)
}

// referralNumber derives a short document number from the appointment id
func referralNumber(appointmentID string) string {
	id := strings.ReplaceAll(appointmentID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "R-" + strings.ToUpper(id)
}

func writePDFAttachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
