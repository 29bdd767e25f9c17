package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/pkg/model"
)

// unknownRef is the placeholder rendered in CSV output for foreign keys
// that no longer resolve. The JSON report structures omit the entity
// instead; choosing display text there is the caller's job.
const unknownRef = "unknown"

// financialDisplayLimit caps the appointment list embedded in the
// financial report structure. The CSV always contains every row.
const financialDisplayLimit = 50

// GenderDistribution counts patients by gender
type GenderDistribution struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// InsuranceDistribution counts patients by insurance category
type InsuranceDistribution struct {
	OMS  int `json:"oms"`
	DMS  int `json:"dms"`
	None int `json:"none"`
}

// PatientsReport summarizes the patient collection
type PatientsReport struct {
	Type               string                `json:"type"`
	GeneratedAt        time.Time             `json:"generatedAt"`
	Total              int                   `json:"total"`
	GenderDistribution GenderDistribution    `json:"genderDistribution"`
	AgeGroups          map[string]int        `json:"ageGroups"`
	ByInsurance        InsuranceDistribution `json:"byInsurance"`
	Filename           string                `json:"filename"`
}

// FinancialReport summarizes appointment revenue. TotalRevenue is the sum
// of the linked service price over all appointments; appointments whose
// service no longer resolves contribute zero.
type FinancialReport struct {
	Type              string              `json:"type"`
	GeneratedAt       time.Time           `json:"generatedAt"`
	TotalAppointments int                 `json:"totalAppointments"`
	TotalRevenue      int                 `json:"totalRevenue"`
	Appointments      []model.Appointment `json:"appointments"`
	Filename          string              `json:"filename"`
}

// AppointmentsReport breaks the appointment collection down by status
type AppointmentsReport struct {
	Type        string         `json:"type"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
}

// ReportService builds reports over a snapshot of the clinic document.
// Reports never mutate the document.
type ReportService struct {
	repo   *repository.Clinic
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repo *repository.Clinic, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Patients builds the patients report
func (s *ReportService) Patients(ctx context.Context) (*PatientsReport, error) {
	db, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document for patients report: %w", err)
	}

	report := BuildPatientsReport(db, s.now())
	s.logger.Info("patients report generated", zap.Int("total", report.Total))
	return report, nil
}

// PatientsCSV renders the patients report as CSV
func (s *ReportService) PatientsCSV(ctx context.Context) ([]byte, string, error) {
	db, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load document for patients CSV: %w", err)
	}
	return BuildPatientsCSV(db), reportFilename("patients", s.now()), nil
}

// Financial builds the financial report
func (s *ReportService) Financial(ctx context.Context) (*FinancialReport, error) {
	db, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document for financial report: %w", err)
	}

	report := BuildFinancialReport(db, s.now())
	s.logger.Info("financial report generated",
		zap.Int("appointments", report.TotalAppointments),
		zap.Int("total_revenue", report.TotalRevenue),
	)
	return report, nil
}

// FinancialCSV renders the financial report as CSV
func (s *ReportService) FinancialCSV(ctx context.Context) ([]byte, string, error) {
	db, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load document for financial CSV: %w", err)
	}
	return BuildFinancialCSV(db), reportFilename("financial", s.now()), nil
}

// Appointments builds the appointments report
func (s *ReportService) Appointments(ctx context.Context) (*AppointmentsReport, error) {
	db, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document for appointments report: %w", err)
	}

	report := BuildAppointmentsReport(db, s.now())
	s.logger.Info("appointments report generated", zap.Int("total", report.Total))
	return report, nil
}

// BuildPatientsReport computes the patients report from a document
// snapshot. The four age buckets partition the patient set: every patient
// falls into exactly one of them.
func BuildPatientsReport(db *model.Database, now time.Time) *PatientsReport {
	report := &PatientsReport{
		Type:        "patients",
		GeneratedAt: now,
		Total:       len(db.Patients),
		AgeGroups: map[string]int{
			"0-18":  0,
			"19-35": 0,
			"36-60": 0,
			"61+":   0,
		},
		Filename: reportFilename("patients", now),
	}

	for _, p := range db.Patients {
		switch p.Gender {
		case model.GenderMale:
			report.GenderDistribution.Male++
		case model.GenderFemale:
			report.GenderDistribution.Female++
		}

		report.AgeGroups[ageBucket(p.Age)]++

		switch p.Insurance {
		case model.InsuranceOMS:
			report.ByInsurance.OMS++
		case model.InsuranceDMS:
			report.ByInsurance.DMS++
		default:
			report.ByInsurance.None++
		}
	}

	return report
}

// BuildPatientsCSV renders one quoted row per patient
func BuildPatientsCSV(db *model.Database) []byte {
	rows := make([][]string, 0, len(db.Patients))
	for _, p := range db.Patients {
		rows = append(rows, []string{
			p.FullName,
			strconv.Itoa(p.Age),
			string(p.Gender),
			string(p.Insurance),
			p.Phone,
		})
	}
	return writeCSV([]string{"Name", "Age", "Gender", "Insurance", "Phone"}, rows)
}

// BuildFinancialReport computes the financial report from a document
// snapshot. Only the first financialDisplayLimit appointments are embedded
// for display.
func BuildFinancialReport(db *model.Database, now time.Time) *FinancialReport {
	services := serviceIndex(db)

	total := 0
	for _, a := range db.Appointments {
		if svc, ok := services[a.ServiceID]; ok {
			total += svc.Price
		}
	}

	display := db.Appointments
	if len(display) > financialDisplayLimit {
		display = display[:financialDisplayLimit]
	}
	if display == nil {
		display = []model.Appointment{}
	}

	return &FinancialReport{
		Type:              "financial",
		GeneratedAt:       now,
		TotalAppointments: len(db.Appointments),
		TotalRevenue:      total,
		Appointments:      display,
		Filename:          reportFilename("financial", now),
	}
}

// BuildFinancialCSV renders one quoted row per appointment, resolving the
// patient and service names and falling back to the unknown placeholder
// for dangling references.
func BuildFinancialCSV(db *model.Database) []byte {
	services := serviceIndex(db)
	patients := make(map[string]model.Patient, len(db.Patients))
	for _, p := range db.Patients {
		patients[p.ID] = p
	}

	rows := make([][]string, 0, len(db.Appointments))
	for _, a := range db.Appointments {
		patientName := unknownRef
		if p, ok := patients[a.PatientID]; ok {
			patientName = p.FullName
		}
		serviceName := unknownRef
		price := 0
		if svc, ok := services[a.ServiceID]; ok {
			serviceName = svc.Name
			price = svc.Price
		}
		rows = append(rows, []string{
			a.Date,
			patientName,
			serviceName,
			strconv.Itoa(price),
			string(a.Status),
		})
	}
	return writeCSV([]string{"Date", "Patient", "Service", "Price", "Status"}, rows)
}

// BuildAppointmentsReport computes the appointment status breakdown from a
// document snapshot. All four status buckets are always present.
func BuildAppointmentsReport(db *model.Database, now time.Time) *AppointmentsReport {
	byStatus := map[string]int{
		string(model.AppointmentStatusScheduled): 0,
		string(model.AppointmentStatusConfirmed): 0,
		string(model.AppointmentStatusCompleted): 0,
		string(model.AppointmentStatusCancelled): 0,
	}
	for _, a := range db.Appointments {
		byStatus[string(a.Status)]++
	}

	return &AppointmentsReport{
		Type:        "appointments",
		GeneratedAt: now,
		Total:       len(db.Appointments),
		ByStatus:    byStatus,
	}
}

func ageBucket(age int) string {
	switch {
	case age <= 18:
		return "0-18"
	case age <= 35:
		return "19-35"
	case age <= 60:
		return "36-60"
	default:
		return "61+"
	}
}

func serviceIndex(db *model.Database) map[string]model.Service {
	idx := make(map[string]model.Service, len(db.Services))
	for _, s := range db.Services {
		idx[s.ID] = s
	}
	return idx
}

func reportFilename(reportType string, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.csv", reportType, now.Format("2006-01-02"))
}
