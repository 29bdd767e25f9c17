package model

import "time"

// SchemaVersion is the clinic document format version persisted with the data.
const SchemaVersion = "2.1"

// Gender represents a patient's gender
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// InsuranceType represents a patient's insurance category
type InsuranceType string

const (
	InsuranceOMS  InsuranceType = "OMS" // compulsory medical insurance
	InsuranceDMS  InsuranceType = "DMS" // voluntary medical insurance
	InsuranceNone InsuranceType = ""
)

// PatientStatus represents the status of a patient record
type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusArchived PatientStatus = "archived"
)

// AppointmentStatus represents the status of an appointment.
// Any status transition is permitted; there is no state machine.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ContractStatus represents the status of a service contract
type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusTerminated ContractStatus = "terminated"
)

// PaymentStatus represents the payment state of a contract
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// Patient represents a patient card.
// Age is computed once when the card is created and is not recomputed on
// reads, so the stored value drifts as time passes. This is a documented
// limitation of the document format, not a bug.
type Patient struct {
	ID              string        `json:"id"`
	CardNumber      string        `json:"cardNumber"`
	FullName        string        `json:"fullName"`
	BirthDate       string        `json:"birthDate"` // YYYY-MM-DD
	Age             int           `json:"age"`
	Gender          Gender        `json:"gender"`
	Phone           string        `json:"phone"`
	Email           string        `json:"email"`
	Address         string        `json:"address"`
	Insurance       InsuranceType `json:"insurance"`
	InsuranceNumber string        `json:"insuranceNumber"`
	BloodType       string        `json:"bloodType"`
	Allergies       []string      `json:"allergies"`
	ChronicDiseases []string      `json:"chronicDiseases"`
	Disability      bool          `json:"disability"`
	Status          PatientStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Service represents a catalog entry for a billable medical service.
// Price is in integer currency units.
type Service struct {
	ID           string   `json:"id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int      `json:"price"`
	Category     string   `json:"category"`
	Duration     int      `json:"duration"` // minutes
	IsActive     bool     `json:"isActive"`
	Requirements string   `json:"requirements"`
	Tags         []string `json:"tags"`
}

// ScheduleEntry is one weekly working slot of a doctor. Entries are not
// validated against each other; overlapping slots are allowed.
type ScheduleEntry struct {
	Day   string `json:"day"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// Doctor represents a practicing doctor
type Doctor struct {
	ID             string          `json:"id"`
	FullName       string          `json:"fullName"`
	Specialty      string          `json:"specialty"`
	Qualifications string          `json:"qualifications"`
	Schedule       []ScheduleEntry `json:"schedule"`
	Room           string          `json:"room"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	IsActive       bool            `json:"isActive"`
}

// Appointment links a patient, a doctor and a service at a date and time.
// Foreign keys are not checked at write time; dangling references are
// tolerated and resolved to an absent value at read time.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patientId"`
	DoctorID  string            `json:"doctorId"`
	ServiceID string            `json:"serviceId"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Time      string            `json:"time"` // HH:MM
	Duration  int               `json:"duration"`
	Status    AppointmentStatus `json:"status"`
	Reason    string            `json:"reason"`
	Notes     string            `json:"notes"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// MedicationEntry is a prescribed medication within a medical record
type MedicationEntry struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// MedicalRecord is an append-only visit record. The doctor name and
// specialty are denormalized snapshots, not references.
type MedicalRecord struct {
	ID            string            `json:"id"`
	PatientID     string            `json:"patientId"`
	Date          string            `json:"date"` // YYYY-MM-DD
	Time          string            `json:"time"` // HH:MM
	Doctor        string            `json:"doctor"`
	Specialty     string            `json:"specialty"`
	Diagnosis     string            `json:"diagnosis"`
	Symptoms      string            `json:"symptoms"`
	Treatment     string            `json:"treatment"`
	Prescriptions []string          `json:"prescriptions"`
	Medications   []MedicationEntry `json:"medications"`
	NextVisit     string            `json:"nextVisit"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// Contract is an agreement covering a set of services for a patient.
// TotalAmount is summed from the linked service prices once at creation
// and is not recomputed if the catalog changes later.
type Contract struct {
	ID          string         `json:"id"`
	Number      string         `json:"number"`
	PatientID   string         `json:"patientId"`
	Date        string         `json:"date"` // YYYY-MM-DD
	ServiceIDs  []string       `json:"services"`
	TotalAmount int            `json:"totalAmount"`
	Status      ContractStatus `json:"status"`
	Payment     PaymentStatus  `json:"paymentStatus"`
	SignedDate  string         `json:"signedDate"`
	ValidUntil  string         `json:"validUntil"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// MonthlyStat holds per-month aggregate counters
type MonthlyStat struct {
	Patients     int `json:"patients"`
	Appointments int `json:"appointments"`
	Revenue      int `json:"revenue"`
	Services     int `json:"services"`
}

// Statistics holds document-wide aggregates. They are recomputed wholesale
// on every mutating operation rather than maintained incrementally.
type Statistics struct {
	TotalPatients     int                    `json:"totalPatients"`
	TotalAppointments int                    `json:"totalAppointments"`
	TotalRevenue      int                    `json:"totalRevenue"`
	MonthlyStats      map[string]MonthlyStat `json:"monthlyStats"`
}

// Database is the whole clinic document. All collections live in this one
// document; none are independently persisted.
type Database struct {
	Version        string          `json:"version"`
	LastUpdated    time.Time       `json:"lastUpdated"`
	LastBackup     *time.Time      `json:"lastBackup"`
	Patients       []Patient       `json:"patients"`
	Services       []Service       `json:"services"`
	Appointments   []Appointment   `json:"appointments"`
	MedicalRecords []MedicalRecord `json:"medicalRecords"`
	Contracts      []Contract      `json:"contracts"`
	Doctors        []Doctor        `json:"doctors"`
	Statistics     Statistics      `json:"statistics"`
}

// NewDatabase returns an empty clinic document
func NewDatabase(now time.Time) *Database {
	return &Database{
		Version:        SchemaVersion,
		LastUpdated:    now,
		Patients:       []Patient{},
		Services:       []Service{},
		Appointments:   []Appointment{},
		MedicalRecords: []MedicalRecord{},
		Contracts:      []Contract{},
		Doctors:        []Doctor{},
		Statistics:     Statistics{MonthlyStats: map[string]MonthlyStat{}},
	}
}
