package model

import "time"

// CalculateAge returns the number of full years between a YYYY-MM-DD birth
// date and the given reference date, decrementing when the reference
// month/day precedes the birth month/day. An empty or malformed birth date
// yields 0.
func CalculateAge(birthDate string, now time.Time) int {
	if birthDate == "" {
		return 0
	}
	birth, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
