package handlers

import (
	"time"

	"github.com/salonworks/salon-scheduler/internal/models"
	"github.com/salonworks/salon-scheduler/internal/timezone"
)

// resolve o timezone oficial do salão
func locationFromSalon(salon *models.Salon) *time.Location {
	return timezone.Location(salon.Timezone)
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}

// data de query string, sem fuso: o use case reancora no fuso do salão
func parseQueryDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

func parseDateTimeInSalon(
	salon *models.Salon,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return timezone.WallClockToInstant(date, timeStr, locationFromSalon(salon))
}
