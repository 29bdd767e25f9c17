package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/pkg/model"
)

// RecordCounts holds per-collection entry counts
type RecordCounts struct {
	Patients       int `json:"patients"`
	Services       int `json:"services"`
	Appointments   int `json:"appointments"`
	MedicalRecords int `json:"medicalRecords"`
	Contracts      int `json:"contracts"`
	Doctors        int `json:"doctors"`
}

// ExportResult is a full document dump with its metadata
type ExportResult struct {
	Filename string       `json:"filename"`
	Size     int          `json:"size"`
	Records  RecordCounts `json:"records"`
	Data     []byte       `json:"-"`
}

// ImportResult reports the outcome of an import. A malformed payload is a
// structured failure here, never an error returned to the caller: Success
// is false and Message/Detail describe what went wrong, and the live
// document is left untouched.
type ImportResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Records RecordCounts `json:"records,omitempty"`
	Detail  string       `json:"detail,omitempty"`
}

// BackupService serializes the whole clinic document out and back in
type BackupService struct {
	repo   *repository.Clinic
	logger *zap.Logger
	now    func() time.Time
}

// NewBackupService creates a new BackupService
func NewBackupService(repo *repository.Clinic, logger *zap.Logger) *BackupService {
	return &BackupService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Export dumps the current document as indented JSON
func (s *BackupService) Export(ctx context.Context) (*ExportResult, error) {
	db, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document for export: %w", err)
	}

	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	result := &ExportResult{
		Filename: fmt.Sprintf("ems_backup_%s.json", s.now().Format("2006-01-02")),
		Size:     len(data),
		Records:  countRecords(db),
		Data:     data,
	}

	s.logger.Info("document exported",
		zap.String("filename", result.Filename),
		zap.Int("size_bytes", result.Size),
		zap.Int("patients", result.Records.Patients),
	)
	return result, nil
}

// Import parses the payload as a clinic document and replaces the live
// document wholesale, snapshotting the previous one into the single
// backup slot first. The only structural validation is that the top-level
// patients field exists and is a list; nested entity shapes are not
// checked. The returned error is non-nil only for storage faults, never
// for a bad payload.
func (s *BackupService) Import(ctx context.Context, payload []byte) (*ImportResult, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		s.logger.Warn("import rejected: payload is not valid JSON", zap.Error(err))
		return &ImportResult{
			Success: false,
			Message: "import failed: payload is not valid JSON",
			Detail:  err.Error(),
		}, nil
	}

	rawPatients, ok := probe["patients"]
	if !ok || !isJSONArray(rawPatients) {
		s.logger.Warn("import rejected: patients collection missing or not a list")
		return &ImportResult{
			Success: false,
			Message: "import failed: patients collection is missing or not a list",
		}, nil
	}

	var db model.Database
	if err := json.Unmarshal(payload, &db); err != nil {
		s.logger.Warn("import rejected: document shape mismatch", zap.Error(err))
		return &ImportResult{
			Success: false,
			Message: "import failed: document could not be decoded",
			Detail:  err.Error(),
		}, nil
	}

	now := s.now()
	db.LastUpdated = now
	db.LastBackup = &now

	if err := s.repo.Replace(ctx, &db); err != nil {
		return nil, fmt.Errorf("failed to store imported document: %w", err)
	}

	counts := countRecords(&db)
	result := &ImportResult{
		Success: true,
		Message: fmt.Sprintf("database imported: %d patients, %d services, %d appointments",
			counts.Patients, counts.Services, counts.Appointments),
		Records: counts,
	}

	s.logger.Info("document imported",
		zap.Int("patients", counts.Patients),
		zap.Int("services", counts.Services),
		zap.Int("appointments", counts.Appointments),
	)
	return result, nil
}

func countRecords(db *model.Database) RecordCounts {
	return RecordCounts{
		Patients:       len(db.Patients),
		Services:       len(db.Services),
		Appointments:   len(db.Appointments),
		MedicalRecords: len(db.MedicalRecords),
		Contracts:      len(db.Contracts),
		Doctors:        len(db.Doctors),
	}
}

// isJSONArray reports whether the raw value is a JSON array, skipping
// leading whitespace.
func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
