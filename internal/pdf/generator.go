package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// Generator renders printable clinic documents. These are presentational
// outputs interpolating entity fields; they carry no structured data.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger}
}

// ReferralData contains everything a referral document interpolates.
// Patient and Doctor may be nil when the references dangle; the fields
// then render empty.
type ReferralData struct {
	Number   string
	IssuedAt time.Time
	Patient  *model.Patient
	Doctor   *model.Doctor
	Date     string
	Time     string
	Reason   string
}

// ContractData contains everything a contract document interpolates
type ContractData struct {
	Contract *model.Contract
	Patient  *model.Patient
	Services []model.Service
}

// Referral renders a patient referral document
func (g *Generator) Referral(data ReferralData) ([]byte, error) {
	g.logger.Info("generating referral document",
		zap.String("number", data.Number),
	)

	reason := data.Reason
	if reason == "" {
		reason = "Routine checkup"
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, fmt.Sprintf("REFERRAL No. %s", data.Number), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("Issued: %s", data.IssuedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	doc.Ln(4)

	addSection(doc, "Patient")
	if data.Patient != nil {
		addLine(doc, fmt.Sprintf("Name: %s", data.Patient.FullName))
		addLine(doc, fmt.Sprintf("Date of birth: %s", data.Patient.BirthDate))
		insurance := data.Patient.InsuranceNumber
		if insurance == "" {
			insurance = string(data.Patient.Insurance)
		}
		addLine(doc, fmt.Sprintf("Insurance: %s", insurance))
	}
	doc.Ln(4)

	addSection(doc, "Referred to")
	if data.Doctor != nil {
		addLine(doc, fmt.Sprintf("Doctor: %s", data.Doctor.FullName))
		addLine(doc, fmt.Sprintf("Specialty: %s", data.Doctor.Specialty))
		addLine(doc, fmt.Sprintf("Room: %s", data.Doctor.Room))
	}
	doc.Ln(4)

	addSection(doc, "Appointment")
	addLine(doc, fmt.Sprintf("Date: %s", data.Date))
	addLine(doc, fmt.Sprintf("Time: %s", data.Time))
	addLine(doc, fmt.Sprintf("Purpose of visit: %s", reason))
	doc.Ln(4)

	addSection(doc, "Recommendations")
	addLine(doc, "- Arrive 15 minutes before the scheduled time")
	addLine(doc, "- Bring your passport and insurance card")
	addLine(doc, "- Bring previous medical documents, if any")
	doc.Ln(10)

	addLine(doc, "Doctor's signature: __________")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		g.logger.Error("failed to render referral", zap.Error(err))
		return nil, fmt.Errorf("failed to render referral: %w", err)
	}

	g.logger.Info("referral document generated",
		zap.Int("size_bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// ReferralFilename builds the download filename for a referral
func ReferralFilename(patient *model.Patient, date string) string {
	name := "patient"
	if patient != nil && patient.FullName != "" {
		name = strings.Fields(patient.FullName)[0]
	}
	return fmt.Sprintf("referral_%s_%s.pdf", name, date)
}

// ServiceContract renders a medical services agreement
func (g *Generator) ServiceContract(data ContractData) ([]byte, error) {
	if data.Contract == nil {
		return nil, fmt.Errorf("contract is required")
	}

	g.logger.Info("generating contract document",
		zap.String("number", data.Contract.Number),
	)

	patientName := "Patient"
	if data.Patient != nil {
		patientName = data.Patient.FullName
	}
	validUntil := data.Contract.ValidUntil
	if validUntil == "" {
		validUntil = "end of the calendar year"
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, "MEDICAL SERVICES AGREEMENT", "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Arial", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("No. %s, dated %s", data.Contract.Number, data.Contract.Date), "", 1, "C", false, 0, "")
	doc.Ln(6)

	addLine(doc, "The MedCenter clinic, hereinafter the \"Provider\",")
	addLine(doc, fmt.Sprintf("and %s, hereinafter the \"Client\",", patientName))
	addLine(doc, "have entered into this agreement:")
	doc.Ln(4)

	addSection(doc, "1. Subject of the agreement")
	addLine(doc, "The Provider undertakes to render the following medical services:")
	for _, svc := range data.Services {
		addLine(doc, fmt.Sprintf("- %s - %d", svc.Name, svc.Price))
	}
	doc.Ln(4)

	addSection(doc, "2. Cost of services")
	addLine(doc, fmt.Sprintf("Total cost of services: %d", data.Contract.TotalAmount))
	doc.Ln(4)

	addSection(doc, "3. Payment terms")
	addLine(doc, "Payment is due within 5 banking days.")
	doc.Ln(4)

	addSection(doc, "4. Validity")
	addLine(doc, fmt.Sprintf("The agreement is valid until %s.", validUntil))
	doc.Ln(10)

	addSection(doc, "Signatures")
	addLine(doc, "_________________             _________________")
	addLine(doc, fmt.Sprintf("Chief physician               %s", patientName))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		g.logger.Error("failed to render contract", zap.Error(err))
		return nil, fmt.Errorf("failed to render contract: %w", err)
	}

	g.logger.Info("contract document generated",
		zap.Int("size_bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

// ContractFilename builds the download filename for a contract document
func ContractFilename(contract *model.Contract) string {
	number := "contract"
	if contract != nil && contract.Number != "" {
		number = contract.Number
	}
	return fmt.Sprintf("contract_%s.pdf", number)
}

func addSection(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
}

func addLine(doc *gofpdf.Fpdf, text string) {
	doc.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}
