// internal/search/schedule.go
package search

import (
	"time"

	"foodfinder/internal/models"
)

// IsOpenAt reports whether the venue's schedule covers the given time. A
// venue with no schedule at all is assumed open; a venue whose schedule has
// no span for the weekday is closed. Times compare as "HH:MM" strings, the
// same convention the source dataset uses.
func IsOpenAt(venue *models.Venue, now time.Time) bool {
	if len(venue.OpenHours) == 0 {
		return true
	}

	day := now.Format("Mon")
	current := now.Format("15:04")

	for _, span := range venue.OpenHours {
		if span.Day != day {
			continue
		}
		if span.From <= current && current <= span.To {
			return true
		}
	}
	return false
}
