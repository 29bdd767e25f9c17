package model

import "time"

// Fixed identifiers for the seed data so foreign keys line up across
// collections in a freshly initialized store.
const (
	seedPatientIvanov  = "6f1c2a9e-3d44-4b8a-9a07-1f2e5c8d0a11"
	seedPatientPetrova = "a2d8e4b1-7c35-49f0-8b62-93d4a1e7c522"
	seedServiceIntake  = "c7b3f8d2-1e64-4a29-b5c8-0d9e6f3a4b33"
	seedServiceECG     = "d94a1c5e-8f27-4b63-a1d0-5e8c2b7f9a44"
	seedServiceUltra   = "e5c6d2f8-0a19-4738-9e4b-7c1d3a8e2f55"
	seedDoctorDrozdov  = "f8a4b6c1-2d93-4e57-8a0f-6b3c9d1e4a66"
	seedDoctorSemenova = "0b7d3e9a-5c28-4f14-b6a2-8d0e4c7f1b77"
	seedAppointment    = "1c8e4f0b-6d39-4a25-c7b3-9e1f5d8a2c88"
	seedRecord         = "2d9f5a1c-7e40-4b36-d8c4-0f2a6e9b3d99"
	seedContract       = "3e0a6b2d-8f51-4c47-e9d5-1a3b7f0c4eaa"
)

// Seed returns the starter document a fresh installation is initialized
// with, so the system is demonstrable before any data has been entered.
func Seed(now time.Time) *Database {
	db := NewDatabase(now)

	db.Patients = []Patient{
		{
			ID:              seedPatientIvanov,
			CardNumber:      "P00123",
			FullName:        "Ivan Ivanovich Ivanov",
			BirthDate:       "1980-03-15",
			Gender:          GenderMale,
			Phone:           "+7(999)123-45-67",
			Email:           "ivanov@example.com",
			Address:         "15 Lenin St, apt 42, Moscow",
			Insurance:       InsuranceOMS,
			InsuranceNumber: "1234567890123456",
			BloodType:       "II+",
			Allergies:       []string{"Penicillin", "Peanuts"},
			ChronicDiseases: []string{"Hypertension"},
			Status:          PatientStatusActive,
			CreatedAt:       time.Date(2020, 5, 10, 10, 30, 0, 0, time.UTC),
			UpdatedAt:       now,
		},
		{
			ID:              seedPatientPetrova,
			CardNumber:      "P00124",
			FullName:        "Anna Sergeevna Petrova",
			BirthDate:       "1992-07-22",
			Gender:          GenderFemale,
			Phone:           "+7(999)234-56-78",
			Email:           "petrova@example.com",
			Address:         "8 Mira St, apt 15, Moscow",
			Insurance:       InsuranceDMS,
			InsuranceNumber: "2345678901234567",
			BloodType:       "I-",
			Allergies:       []string{},
			ChronicDiseases: []string{"Asthma"},
			Status:          PatientStatusActive,
			CreatedAt:       time.Date(2021, 2, 15, 14, 20, 0, 0, time.UTC),
			UpdatedAt:       now,
		},
	}
	for i := range db.Patients {
		db.Patients[i].Age = CalculateAge(db.Patients[i].BirthDate, now)
	}

	db.Services = []Service{
		{
			ID:          seedServiceIntake,
			Code:        "A01.001",
			Name:        "Initial therapist consultation",
			Description: "Examination, consultation, examination plan",
			Price:       1500,
			Category:    "Consultations",
			Duration:    30,
			IsActive:    true,
			Tags:        []string{"therapy", "consultation"},
		},
		{
			ID:          seedServiceECG,
			Code:        "A02.015",
			Name:        "ECG with interpretation",
			Description: "12-lead electrocardiogram",
			Price:       800,
			Category:    "Diagnostics",
			Duration:    20,
			IsActive:    true,
			Tags:        []string{"cardiology", "diagnostics"},
		},
		{
			ID:           seedServiceUltra,
			Code:         "B03.007",
			Name:         "Abdominal ultrasound",
			Description:  "Ultrasound examination of the abdominal organs",
			Price:        2200,
			Category:     "Diagnostics",
			Duration:     40,
			IsActive:     true,
			Requirements: "Fasting",
			Tags:         []string{"ultrasound", "diagnostics"},
		},
	}

	db.Doctors = []Doctor{
		{
			ID:             seedDoctorDrozdov,
			FullName:       "Alexey Vladimirovich Drozdov",
			Specialty:      "Therapist",
			Qualifications: "Highest category, PhD",
			Schedule: []ScheduleEntry{
				{Day: "Monday", Start: "09:00", End: "18:00"},
				{Day: "Tuesday", Start: "09:00", End: "18:00"},
				{Day: "Wednesday", Start: "09:00", End: "18:00"},
				{Day: "Thursday", Start: "09:00", End: "18:00"},
				{Day: "Friday", Start: "09:00", End: "16:00"},
			},
			Room:     "101",
			Phone:    "+7(495)123-45-67",
			Email:    "drozdov@clinic.example",
			IsActive: true,
		},
		{
			ID:             seedDoctorSemenova,
			FullName:       "Irina Petrovna Semenova",
			Specialty:      "Cardiologist",
			Qualifications: "First category",
			Schedule: []ScheduleEntry{
				{Day: "Tuesday", Start: "10:00", End: "19:00"},
				{Day: "Wednesday", Start: "10:00", End: "19:00"},
				{Day: "Thursday", Start: "10:00", End: "19:00"},
				{Day: "Saturday", Start: "09:00", End: "15:00"},
			},
			Room:     "202",
			Phone:    "+7(495)234-56-78",
			Email:    "semenova@clinic.example",
			IsActive: true,
		},
	}

	db.Appointments = []Appointment{
		{
			ID:        seedAppointment,
			PatientID: seedPatientIvanov,
			DoctorID:  seedDoctorDrozdov,
			ServiceID: seedServiceIntake,
			Date:      "2024-01-20",
			Time:      "14:30",
			Duration:  30,
			Status:    AppointmentStatusScheduled,
			Reason:    "Routine checkup",
			CreatedAt: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		},
	}

	db.MedicalRecords = []MedicalRecord{
		{
			ID:            seedRecord,
			PatientID:     seedPatientIvanov,
			Date:          "2024-01-10",
			Time:          "09:30",
			Doctor:        "A.V. Drozdov",
			Specialty:     "Therapist",
			Diagnosis:     "J06.9 - Acute upper respiratory infection, unspecified",
			Symptoms:      "Temperature 37.8C, cough, runny nose, headache",
			Treatment:     "Bed rest, plenty of fluids, paracetamol 500mg three times a day",
			Prescriptions: []string{"Complete blood count", "Chest X-ray"},
			Medications: []MedicationEntry{
				{Name: "Paracetamol", Dosage: "500mg", Frequency: "3 times a day", Duration: "5 days"},
			},
			NextVisit: "2024-01-17",
			Notes:     "Patient is feeling satisfactory. Home regimen recommended.",
			CreatedAt: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		},
	}

	db.Contracts = []Contract{
		{
			ID:          seedContract,
			Number:      "C-2024-001",
			PatientID:   seedPatientIvanov,
			Date:        "2024-01-05",
			ServiceIDs:  []string{seedServiceIntake, seedServiceECG},
			TotalAmount: 2300,
			Status:      ContractStatusActive,
			Payment:     PaymentStatusPaid,
			SignedDate:  "2024-01-05",
			ValidUntil:  "2024-12-31",
			Notes:       "Contract for paid services",
			CreatedAt:   time.Date(2024, 1, 5, 11, 0, 0, 0, time.UTC),
		},
	}

	db.Statistics = Statistics{
		TotalPatients:     len(db.Patients),
		TotalAppointments: len(db.Appointments),
		TotalRevenue:      2300,
		MonthlyStats: map[string]MonthlyStat{
			"2024-01": {Patients: 2, Appointments: 1, Revenue: 2300, Services: 3},
		},
	}

	return db
}
