package service

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/emsclinic/ems-backend/pkg/model"
)

// The four age buckets partition the patient set: their counts always sum
// to the total, whatever ages the patients have.
func TestProperty_AgeGroupsPartitionPatients(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("age group counts sum to the patient total", prop.ForAll(
		func(ages []int) bool {
			now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
			db := model.NewDatabase(now)
			for _, age := range ages {
				db.Patients = append(db.Patients, model.Patient{
					ID:     "p",
					Age:    age,
					Gender: model.GenderFemale,
				})
			}

			report := BuildPatientsReport(db, now)

			sum := 0
			for _, count := range report.AgeGroups {
				sum += count
			}
			return sum == report.Total && report.Total == len(ages) && len(report.AgeGroups) == 4
		},
		gen.SliceOf(gen.IntRange(0, 120)),
	))

	properties.TestingRun(t)
}

// Revenue never counts an appointment whose service does not resolve, and
// it never exceeds the sum of all catalog prices times the appointment count.
func TestProperty_FinancialRevenueMatchesResolvedServices(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("revenue equals the sum of resolved service prices", prop.ForAll(
		func(prices []int, danglingCount int) bool {
			now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
			db := model.NewDatabase(now)

			expected := 0
			for i, price := range prices {
				serviceID := string(rune('a' + i%26))
				db.Services = append(db.Services, model.Service{ID: serviceID, Name: "svc", Price: price})
			}
			// Rebuild the index the same way the report does: later entries
			// with the same id win.
			index := map[string]int{}
			for _, svc := range db.Services {
				index[svc.ID] = svc.Price
			}

			for _, svc := range db.Services {
				db.Appointments = append(db.Appointments, model.Appointment{ID: "a", ServiceID: svc.ID})
			}
			for _, svc := range db.Services {
				expected += index[svc.ID]
			}
			for i := 0; i < danglingCount; i++ {
				db.Appointments = append(db.Appointments, model.Appointment{ID: "a", ServiceID: "no-such-service"})
			}

			report := BuildFinancialReport(db, now)
			return report.TotalRevenue == expected &&
				report.TotalAppointments == len(db.Appointments)
		},
		gen.SliceOf(gen.IntRange(0, 10000)),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
