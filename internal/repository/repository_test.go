package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/storage"
	"github.com/emsclinic/ems-backend/pkg/model"
)

func TestInit_SeedsEmptyStore(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	require.NoError(t, repo.Init(ctx))

	db, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SchemaVersion, db.Version)
	assert.Len(t, db.Patients, 2)
	assert.Len(t, db.Services, 3)
	assert.Len(t, db.Doctors, 2)
}

func TestInit_DoesNotOverwriteExistingDocument(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	patient, err := repo.AddPatient(ctx, PatientInput{
		FullName:  "Pre-existing",
		BirthDate: "1970-01-01",
		Gender:    model.GenderMale,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Init(ctx))

	patients, err := repo.GetAllPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, patient.ID, patients[0].ID)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	appointment, err := repo.AddAppointment(ctx, AppointmentInput{
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Date:      "2024-07-01",
		Time:      "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, appointment.Status)

	updated, err := repo.UpdateAppointmentStatus(ctx, appointment.ID, model.AppointmentStatusConfirmed)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)

	appointments, err := repo.GetAllAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, model.AppointmentStatusConfirmed, appointments[0].Status)
}

func TestUpdateAppointmentStatus_NotFound(t *testing.T) {
	repo := newTestClinic(t)

	updated, err := repo.UpdateAppointmentStatus(context.Background(), "missing-id", model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestAddAppointment_MissingRequiredFields(t *testing.T) {
	repo := newTestClinic(t)

	_, err := repo.AddAppointment(context.Background(), AppointmentInput{
		PatientID: "patient-1",
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"doctorId", "date", "time"}, validationErr.Fields)
}

func TestAddContract(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	consultation, err := repo.AddService(ctx, ServiceInput{Code: "A01", Name: "Consultation", Price: 1500})
	require.NoError(t, err)
	ecg, err := repo.AddService(ctx, ServiceInput{Code: "A02", Name: "ECG", Price: 800})
	require.NoError(t, err)

	contract, err := repo.AddContract(ctx, ContractInput{
		PatientID:  "patient-1",
		ServiceIDs: []string{consultation.ID, ecg.ID, "dangling-service"},
		Date:       "2024-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "C-2024-001", contract.Number)
	assert.Equal(t, 2300, contract.TotalAmount, "unresolved service ids contribute zero")
	assert.Equal(t, model.ContractStatusActive, contract.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, contract.Payment)

	second, err := repo.AddContract(ctx, ContractInput{
		PatientID:  "patient-2",
		ServiceIDs: []string{consultation.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "C-2024-002", second.Number)
}

func TestAddContract_MissingServices(t *testing.T) {
	repo := newTestClinic(t)

	_, err := repo.AddContract(context.Background(), ContractInput{PatientID: "patient-1"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"services"}, validationErr.Fields)
}

func TestUpdateContractPaymentStatus(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	contract, err := repo.AddContract(ctx, ContractInput{
		PatientID:  "patient-1",
		ServiceIDs: []string{"service-1"},
	})
	require.NoError(t, err)

	updated, err := repo.UpdateContractPaymentStatus(ctx, contract.ID, model.PaymentStatusPaid)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, model.PaymentStatusPaid, updated.Payment)

	missing, err := repo.UpdateContractPaymentStatus(ctx, "missing-id", model.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetMedicalRecordsByPatient(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		patientID := "patient-a"
		if i == 2 {
			patientID = "patient-b"
		}
		_, err := repo.AddMedicalRecord(ctx, MedicalRecordInput{
			PatientID: patientID,
			Diagnosis: fmt.Sprintf("diagnosis-%d", i),
		})
		require.NoError(t, err)
	}

	records, err := repo.GetMedicalRecordsByPatient(ctx, "patient-a")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "diagnosis-0", records[0].Diagnosis)
	assert.Equal(t, "diagnosis-1", records[1].Diagnosis)

	none, err := repo.GetMedicalRecordsByPatient(ctx, "unknown-patient")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStatistics_RecomputedOnEveryMutation(t *testing.T) {
	repo := newTestClinic(t)
	ctx := context.Background()

	service, err := repo.AddService(ctx, ServiceInput{Code: "A01", Name: "Consultation", Price: 1500})
	require.NoError(t, err)

	patient, err := repo.AddPatient(ctx, PatientInput{
		FullName:  "Counted Patient",
		BirthDate: "1990-01-01",
		Gender:    model.GenderFemale,
	})
	require.NoError(t, err)

	_, err = repo.AddAppointment(ctx, AppointmentInput{
		PatientID: patient.ID,
		DoctorID:  "doctor-1",
		Date:      "2024-07-01",
		Time:      "11:00",
	})
	require.NoError(t, err)

	_, err = repo.AddContract(ctx, ContractInput{
		PatientID:  patient.ID,
		ServiceIDs: []string{service.ID},
	})
	require.NoError(t, err)

	db, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, db.Statistics.TotalPatients)
	assert.Equal(t, 1, db.Statistics.TotalAppointments)
	assert.Equal(t, 1500, db.Statistics.TotalRevenue)

	require.NoError(t, repo.DeletePatient(ctx, patient.ID))

	db, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, db.Statistics.TotalPatients)
	assert.Equal(t, 1, db.Statistics.TotalAppointments)
	assert.Equal(t, 1500, db.Statistics.TotalRevenue, "revenue tracks contracts, not patients")
}

func TestReplace_WritesBackupSlot(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := New(store, zap.NewNop())
	ctx := context.Background()

	patient, err := repo.AddPatient(ctx, PatientInput{
		FullName:  "Original",
		BirthDate: "1990-01-01",
		Gender:    model.GenderMale,
	})
	require.NoError(t, err)

	incoming := model.NewDatabase(repo.now())
	require.NoError(t, repo.Replace(ctx, incoming))

	// The previous document must be sitting in the backup slot.
	backupRaw, _, err := store.Load(ctx, storage.BackupKey)
	require.NoError(t, err)
	assert.Contains(t, string(backupRaw), patient.ID)

	patients, err := repo.GetAllPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)
}
