package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// DoctorInput enumerates the fields accepted when creating a doctor.
// FullName and Specialty are required. Schedule entries are stored as
// given: overlaps are not rejected, the caller owns that policy.
type DoctorInput struct {
	FullName       string                `json:"fullName"`
	Specialty      string                `json:"specialty"`
	Qualifications string                `json:"qualifications"`
	Schedule       []model.ScheduleEntry `json:"schedule"`
	Room           string                `json:"room"`
	Phone          string                `json:"phone"`
	Email          string                `json:"email"`
}

func (in DoctorInput) validate() error {
	var missing []string
	if in.FullName == "" {
		missing = append(missing, "fullName")
	}
	if in.Specialty == "" {
		missing = append(missing, "specialty")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// AddDoctor creates a doctor and returns the stored entity
func (r *Clinic) AddDoctor(ctx context.Context, in DoctorInput) (*model.Doctor, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	doctor := model.Doctor{
		ID:             r.newID(),
		FullName:       in.FullName,
		Specialty:      in.Specialty,
		Qualifications: in.Qualifications,
		Schedule:       in.Schedule,
		Room:           in.Room,
		Phone:          in.Phone,
		Email:          in.Email,
		IsActive:       true,
	}
	if doctor.Schedule == nil {
		doctor.Schedule = []model.ScheduleEntry{}
	}

	err := r.update(ctx, func(db *model.Database) error {
		db.Doctors = append(db.Doctors, doctor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("doctor added",
		zap.String("doctor_id", doctor.ID),
		zap.String("specialty", doctor.Specialty),
	)
	return &doctor, nil
}

// GetAllDoctors returns the full doctor collection
func (r *Clinic) GetAllDoctors(ctx context.Context) ([]model.Doctor, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db.Doctors == nil {
		return []model.Doctor{}, nil
	}
	return db.Doctors, nil
}

// GetDoctorByID returns the doctor with the given id, or nil without an
// error when no such doctor exists.
func (r *Clinic) GetDoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for i := range db.Doctors {
		if db.Doctors[i].ID == id {
			return &db.Doctors[i], nil
		}
	}
	return nil, nil
}
