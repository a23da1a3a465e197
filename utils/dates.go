package utils

import (
	"os"
	"time"
)

// DateLocation is the application's timezone
var DateLocation = time.UTC

// InitializeDateLocation sets up the application's timezone
func InitializeDateLocation() error {
	timezone := os.Getenv("DB_TIMEZONE")
	if timezone == "" {
		timezone = "UTC"
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	DateLocation = loc
	return nil
}

// NormalizeDate converts a time.Time to a normalized date at midnight in the application timezone
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.In(DateLocation).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, DateLocation)
}

// Today returns today's date normalized at midnight in the application timezone
func Today() time.Time {
	return NormalizeDate(time.Now())
}

// DaysUntil returns the number of whole calendar days from today until the
// given date. Negative when the date is in the past.
func DaysUntil(t time.Time) int {
	return int(NormalizeDate(t).Sub(Today()).Hours() / 24)
}

// AreDatesEqual compares two dates, normalizing them first
func AreDatesEqual(date1, date2 time.Time) bool {
	return NormalizeDate(date1).Equal(NormalizeDate(date2))
}
