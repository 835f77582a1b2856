// internal/search/schedule_test.go
package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"foodfinder/internal/models"
)

func TestIsOpenAt(t *testing.T) {
	venue := &models.Venue{
		ID: "v1",
		OpenHours: []models.HoursSpan{
			{Day: "Mon", From: "09:00", To: "18:00"},
			{Day: "Tue", From: "09:00", To: "12:00"},
			{Day: "Tue", From: "14:00", To: "22:00"},
		},
	}

	mon := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "inside monday span", at: mon.Add(10 * time.Hour), want: true},
		{name: "exactly at open", at: mon.Add(9 * time.Hour), want: true},
		{name: "exactly at close", at: mon.Add(18 * time.Hour), want: true},
		{name: "before open", at: mon.Add(8*time.Hour + 59*time.Minute), want: false},
		{name: "after close", at: mon.Add(18*time.Hour + 1*time.Minute), want: false},
		{name: "second tuesday span", at: mon.Add(24*time.Hour + 15*time.Hour), want: true},
		{name: "tuesday gap between spans", at: mon.Add(24*time.Hour + 13*time.Hour), want: false},
		{name: "day with no spans is closed", at: mon.Add(48 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpenAt(venue, tt.at))
		})
	}
}

func TestIsOpenAtNoSchedule(t *testing.T) {
	venue := &models.Venue{ID: "v1"}
	assert.True(t, IsOpenAt(venue, time.Now()), "a venue without a schedule is always open")
}
