package handlers

import (
	"time"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/timezone"
)

// All schedule math runs in the clinic's own timezone.
func locationFromClinic(clinic *models.Clinic) *time.Location {
	if clinic != nil {
		return timezone.Location(clinic.Timezone)
	}
	return timezone.Location("")
}

func nowInClinic(clinic *models.Clinic) time.Time {
	return time.Now().In(locationFromClinic(clinic))
}

func parseDateInClinic(clinic *models.Clinic, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromClinic(clinic),
	)
}
