package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// MedicalRecordInput enumerates the fields accepted when appending a visit
// record. PatientID and Diagnosis are required. The doctor name and
// specialty are stored as denormalized snapshots, not references.
type MedicalRecordInput struct {
	PatientID     string                  `json:"patientId"`
	Date          string                  `json:"date"`
	Time          string                  `json:"time"`
	Doctor        string                  `json:"doctor"`
	Specialty     string                  `json:"specialty"`
	Diagnosis     string                  `json:"diagnosis"`
	Symptoms      string                  `json:"symptoms"`
	Treatment     string                  `json:"treatment"`
	Prescriptions []string                `json:"prescriptions"`
	Medications   []model.MedicationEntry `json:"medications"`
	NextVisit     string                  `json:"nextVisit"`
	Notes         string                  `json:"notes"`
}

func (in MedicalRecordInput) validate() error {
	var missing []string
	if in.PatientID == "" {
		missing = append(missing, "patientId")
	}
	if in.Diagnosis == "" {
		missing = append(missing, "diagnosis")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// AddMedicalRecord appends a visit record and returns the stored entity.
// Records are append-only: there is no update or delete.
func (r *Clinic) AddMedicalRecord(ctx context.Context, in MedicalRecordInput) (*model.MedicalRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	record := model.MedicalRecord{
		ID:            r.newID(),
		PatientID:     in.PatientID,
		Date:          in.Date,
		Time:          in.Time,
		Doctor:        in.Doctor,
		Specialty:     in.Specialty,
		Diagnosis:     in.Diagnosis,
		Symptoms:      in.Symptoms,
		Treatment:     in.Treatment,
		Prescriptions: in.Prescriptions,
		Medications:   in.Medications,
		NextVisit:     in.NextVisit,
		Notes:         in.Notes,
		CreatedAt:     r.now(),
	}
	if record.Prescriptions == nil {
		record.Prescriptions = []string{}
	}
	if record.Medications == nil {
		record.Medications = []model.MedicationEntry{}
	}

	err := r.update(ctx, func(db *model.Database) error {
		db.MedicalRecords = append(db.MedicalRecords, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("medical record added",
		zap.String("record_id", record.ID),
		zap.String("patient_id", record.PatientID),
	)
	return &record, nil
}

// GetAllMedicalRecords returns the full medical record collection
func (r *Clinic) GetAllMedicalRecords(ctx context.Context) ([]model.MedicalRecord, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db.MedicalRecords == nil {
		return []model.MedicalRecord{}, nil
	}
	return db.MedicalRecords, nil
}

// GetMedicalRecordsByPatient returns the records of one patient in
// insertion order.
func (r *Clinic) GetMedicalRecordsByPatient(ctx context.Context, patientID string) ([]model.MedicalRecord, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	records := []model.MedicalRecord{}
	for _, rec := range db.MedicalRecords {
		if rec.PatientID == patientID {
			records = append(records, rec)
		}
	}
	return records, nil
}
