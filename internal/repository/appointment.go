package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// AppointmentInput enumerates the fields accepted when booking an
// appointment. PatientID, DoctorID, Date and Time are required, but the
// references are not checked for existence: dangling foreign keys are
// tolerated and resolve to an absent value at read time. Double-booked
// slots are not rejected either; scheduling conflicts are the caller's
// policy.
type AppointmentInput struct {
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  int    `json:"duration"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

func (in AppointmentInput) validate() error {
	var missing []string
	if in.PatientID == "" {
		missing = append(missing, "patientId")
	}
	if in.DoctorID == "" {
		missing = append(missing, "doctorId")
	}
	if in.Date == "" {
		missing = append(missing, "date")
	}
	if in.Time == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// AddAppointment books an appointment in the scheduled state and returns
// the stored entity.
func (r *Clinic) AddAppointment(ctx context.Context, in AppointmentInput) (*model.Appointment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := r.now()
	appointment := model.Appointment{
		ID:        r.newID(),
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		ServiceID: in.ServiceID,
		Date:      in.Date,
		Time:      in.Time,
		Duration:  in.Duration,
		Status:    model.AppointmentStatusScheduled,
		Reason:    in.Reason,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.update(ctx, func(db *model.Database) error {
		db.Appointments = append(db.Appointments, appointment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("appointment added",
		zap.String("appointment_id", appointment.ID),
		zap.String("patient_id", appointment.PatientID),
		zap.String("date", appointment.Date),
	)
	return &appointment, nil
}

// GetAllAppointments returns the full appointment collection
func (r *Clinic) GetAllAppointments(ctx context.Context) ([]model.Appointment, error) {
	db, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if db.Appointments == nil {
		return []model.Appointment{}, nil
	}
	return db.Appointments, nil
}

// UpdateAppointmentStatus sets the status of the appointment with the
// given id and returns the updated entity. Any status value is accepted;
// there is no transition check. When no appointment matches, the result is
// nil without an error and nothing is written.
func (r *Clinic) UpdateAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	var updated *model.Appointment
	err := r.update(ctx, func(db *model.Database) error {
		updated = nil
		for i := range db.Appointments {
			if db.Appointments[i].ID == id {
				db.Appointments[i].Status = status
				db.Appointments[i].UpdatedAt = r.now()
				a := db.Appointments[i]
				updated = &a
				return nil
			}
		}
		return errNoChange
	})
	if err == errNoChange {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger.Info("appointment status updated",
		zap.String("appointment_id", id),
		zap.String("status", string(status)),
	)
	return updated, nil
}
