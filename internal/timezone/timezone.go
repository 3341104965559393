package timezone

import (
	"time"
	_ "time/tzdata"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
)

const DefaultTimezone = "America/Argentina/Mendoza"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ======================================================
// CLOCK
// ======================================================

// Clock is the single source of "now" for temporal booking rules.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewClock returns a wall clock reporting time in the given zone.
func NewClock(tz string) Clock {
	return systemClock{loc: Location(tz)}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Today is the civil date of the clock's current instant.
func Today(c Clock) civil.Date {
	return civil.DateOf(c.Now())
}
