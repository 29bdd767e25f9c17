package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsclinic/ems-backend/pkg/model"
)

func testDocument() *model.Database {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	db := model.NewDatabase(now)

	db.Patients = []model.Patient{
		{ID: "p1", FullName: "Ivan Ivanov", Age: 44, Gender: model.GenderMale, Insurance: model.InsuranceOMS, Phone: "+7(999)123-45-67"},
		{ID: "p2", FullName: "Anna Petrova", Age: 31, Gender: model.GenderFemale, Insurance: model.InsuranceDMS, Phone: "+7(999)234-56-78"},
		{ID: "p3", FullName: "Oleg Sidorov", Age: 17, Gender: model.GenderMale, Insurance: model.InsuranceNone, Phone: ""},
	}
	db.Services = []model.Service{
		{ID: "s1", Name: "Consultation", Price: 1500},
		{ID: "s2", Name: "ECG", Price: 800},
	}
	db.Appointments = []model.Appointment{
		{ID: "a1", PatientID: "p1", ServiceID: "s1", Date: "2024-01-20", Status: model.AppointmentStatusScheduled},
		{ID: "a2", PatientID: "p2", ServiceID: "s2", Date: "2024-01-21", Status: model.AppointmentStatusCompleted},
		{ID: "a3", PatientID: "missing", ServiceID: "missing", Date: "2024-01-22", Status: model.AppointmentStatusCancelled},
	}
	return db
}

func TestBuildPatientsReport(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	report := BuildPatientsReport(testDocument(), now)

	assert.Equal(t, "patients", report.Type)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.GenderDistribution.Male)
	assert.Equal(t, 1, report.GenderDistribution.Female)
	assert.Equal(t, map[string]int{"0-18": 1, "19-35": 1, "36-60": 1, "61+": 0}, report.AgeGroups)
	assert.Equal(t, 1, report.ByInsurance.OMS)
	assert.Equal(t, 1, report.ByInsurance.DMS)
	assert.Equal(t, 1, report.ByInsurance.None)
	assert.Equal(t, "patients_report_2024-06-15.csv", report.Filename)
}

func TestBuildFinancialReport(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	report := BuildFinancialReport(testDocument(), now)

	assert.Equal(t, "financial", report.Type)
	assert.Equal(t, 3, report.TotalAppointments)
	assert.Equal(t, 2300, report.TotalRevenue, "the dangling service contributes zero")
	assert.Len(t, report.Appointments, 3)
}

func TestBuildFinancialReport_DisplayListCapped(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	db := model.NewDatabase(now)
	for i := 0; i < financialDisplayLimit+10; i++ {
		db.Appointments = append(db.Appointments, model.Appointment{ID: "a", Status: model.AppointmentStatusScheduled})
	}

	report := BuildFinancialReport(db, now)
	assert.Equal(t, financialDisplayLimit+10, report.TotalAppointments)
	assert.Len(t, report.Appointments, financialDisplayLimit)
}

func TestBuildAppointmentsReport(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	report := BuildAppointmentsReport(testDocument(), now)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, map[string]int{
		"scheduled": 1,
		"confirmed": 0,
		"completed": 1,
		"cancelled": 1,
	}, report.ByStatus)
}

func TestBuildPatientsCSV(t *testing.T) {
	data := string(BuildPatientsCSV(testDocument()))

	require.True(t, strings.HasPrefix(data, utf8BOM), "CSV must start with the UTF-8 BOM")

	lines := strings.Split(strings.TrimPrefix(data, utf8BOM), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"Name","Age","Gender","Insurance","Phone"`, lines[0])
	assert.Equal(t, `"Ivan Ivanov","44","male","OMS","+7(999)123-45-67"`, lines[1])
	assert.Equal(t, `"Oleg Sidorov","17","male","",""`, lines[3])
}

func TestBuildFinancialCSV_DanglingReferences(t *testing.T) {
	data := string(BuildFinancialCSV(testDocument()))

	lines := strings.Split(strings.TrimPrefix(data, utf8BOM), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `"Date","Patient","Service","Price","Status"`, lines[0])
	assert.Equal(t, `"2024-01-20","Ivan Ivanov","Consultation","1500","scheduled"`, lines[1])
	assert.Equal(t, `"2024-01-22","unknown","unknown","0","cancelled"`, lines[3])
}

func TestWriteCSV_QuotesAreDoubled(t *testing.T) {
	data := string(writeCSV([]string{"Name"}, [][]string{{`Ivan "Vanya" Ivanov`}}))

	assert.Contains(t, data, `"Ivan ""Vanya"" Ivanov"`)
}

func TestWriteCSV_CommasStayInsideQuotes(t *testing.T) {
	data := string(writeCSV([]string{"Address"}, [][]string{{"15 Lenin St, Moscow"}}))

	lines := strings.Split(strings.TrimPrefix(data, utf8BOM), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"15 Lenin St, Moscow"`, lines[1])
}

func TestAgeBucket_Boundaries(t *testing.T) {
	tests := []struct {
		age      int
		expected string
	}{
		{0, "0-18"},
		{18, "0-18"},
		{19, "19-35"},
		{35, "19-35"},
		{36, "36-60"},
		{60, "36-60"},
		{61, "61+"},
		{95, "61+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ageBucket(tt.age), "age %d", tt.age)
	}
}
