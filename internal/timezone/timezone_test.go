package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	loc := Location("Mars/Olympus")
	assert.Equal(t, DefaultTimezone, loc.String())

	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestClockReportsInZone(t *testing.T) {
	c := NewClock("UTC")
	assert.Equal(t, time.UTC, c.Now().Location())
}

func TestTodayUsesClockLocation(t *testing.T) {
	// 01:30 UTC is still the previous evening in Mendoza (UTC-3).
	instant := time.Date(2026, time.October, 20, 1, 30, 0, 0, time.UTC)
	c := FixedClock(instant.In(Location(DefaultTimezone)))

	assert.Equal(t, civil.Date{Year: 2026, Month: time.October, Day: 19}, Today(c))
}
