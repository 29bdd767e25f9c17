package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// PatientInput enumerates the fields accepted when creating a patient.
// FullName, BirthDate and Gender are required; everything else defaults.
type PatientInput struct {
	FullName        string              `json:"fullName"`
	BirthDate       string              `json:"birthDate"`
	Gender          model.Gender        `json:"gender"`
	Phone           string              `json:"phone"`
	Email           string              `json:"email"`
	Address         string              `json:"address"`
	Insurance       model.InsuranceType `json:"insurance"`
	InsuranceNumber string              `json:"insuranceNumber"`
	BloodType       string              `json:"bloodType"`
	Allergies       []string            `json:"allergies"`
	ChronicDiseases []string            `json:"chronicDiseases"`
	Disability      bool                `json:"disability"`
}

func (in PatientInput) validate() error {
	var missing []string
	if in.FullName == "" {
		missing = append(missing, "fullName")
	}
	if in.BirthDate == "" {
		missing = append(missing, "birthDate")
	}
	if in.Gender == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// AddPatient creates a patient card from the input, assigning the id, card
// number and derived age, and returns the stored entity. Age is computed
// once here and never again on reads.
func (r *Clinic) AddPatient(ctx context.Context, in PatientInput) (*model.Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := r.now()
	patient := model.Patient{
		ID:              r.newID(),
		CardNumber:      r.newCardNumber(),
		FullName:        in.FullName,
		BirthDate:       in.BirthDate,
		Age:             model.CalculateAge(in.BirthDate, now),
		Gender:          in.Gender,
		Phone:           in.Phone,
		Email:           in.Email,
		Address:         in.Address,
		Insurance:       in.Insurance,
		InsuranceNumber: in.InsuranceNumber,
		BloodType:       in.BloodType,
		Allergies:       in.Allergies,
		ChronicDiseases: in.ChronicDiseases,
		Disability:      in.Disability,
		Status:          model.PatientStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if patient.Allergies == nil {
		patient.Allergies = []string{}
	}
	if patient.ChronicDiseases == nil {
		patient.ChronicDiseases = []string{}
	}

	err := r.update(ctx, func(db *model.Database) error {
		db.Patients = append(db.Patients, patient)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("patient added",
		zap.String("patient_id", patient.ID),
		zap.String("card_number", patient.CardNumber),
	)
	return &patient, nil
}

// GetAllPatients returns the full patient collection, or an empty slice
// when the document or the collection is absent.
func (r *Clinic) GetAllPatients(ctx context.Context) ([]model.Patient, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db.Patients == nil {
		return []model.Patient{}, nil
	}
	return db.Patients, nil
}

// GetPatientByID returns the patient with the given id, or nil without an
// error when no such patient exists.
func (r *Clinic) GetPatientByID(ctx context.Context, id string) (*model.Patient, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range db.Patients {
		if db.Patients[i].ID == id {
			return &db.Patients[i], nil
		}
	}
	return nil, nil
}

// DeletePatient removes the patient with the given id. It succeeds even if
// no matching id exists, and it does not cascade: appointments, records and
// contracts referencing the patient are left dangling by design.
func (r *Clinic) DeletePatient(ctx context.Context, id string) error {
	err := r.update(ctx, func(db *model.Database) error {
		kept := db.Patients[:0]
		for _, p := range db.Patients {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		db.Patients = kept
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("patient deleted", zap.String("patient_id", id))
	return nil
}
