package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
)

func times(t *testing.T, values ...string) []civil.TimeOfDay {
	t.Helper()
	out := make([]civil.TimeOfDay, 0, len(values))
	for _, v := range values {
		tod, err := civil.ParseTimeOfDay(v)
		if err != nil {
			t.Fatalf("bad time %q: %v", v, err)
		}
		out = append(out, tod)
	}
	return out
}

func booked(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func TestResolveSlots(t *testing.T) {
	today := civil.Date{Year: 2026, Month: time.October, Day: 19}
	tomorrow := today.AddDays(1)
	noon := times(t, "12:00")[0]
	templates := times(t, "09:00", "10:30", "12:00", "14:00")

	cases := []struct {
		name      string
		templates []civil.TimeOfDay
		booked    map[string]struct{}
		date      civil.Date
		want      []string
		reason    Reason
	}{
		{"past date", templates, nil, today.AddDays(-1), []string{}, ReasonPastDate},
		{"no templates", nil, nil, tomorrow, []string{}, ReasonNoSlots},
		{"future day all free", templates, nil, tomorrow, []string{"09:00", "10:30", "12:00", "14:00"}, ReasonNone},
		{"booked removed", templates, booked("10:30"), tomorrow, []string{"09:00", "12:00", "14:00"}, ReasonNone},
		{"today drops elapsed and current minute", templates, nil, today, []string{"14:00"}, ReasonNone},
		{"fully booked", templates, booked("09:00", "10:30", "12:00", "14:00"), tomorrow, []string{}, ReasonFullyBooked},
		{"rest elapsed", templates, booked("14:00"), today, []string{}, ReasonAllElapsed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reason := ResolveSlots(tc.templates, tc.booked, tc.date, today, noon)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.reason, reason)
		})
	}
}

func TestReasonMessages(t *testing.T) {
	assert.Empty(t, ReasonNone.Message())
	for _, r := range []Reason{ReasonPastDate, ReasonNoSlots, ReasonFullyBooked, ReasonAllElapsed} {
		assert.NotEmpty(t, r.Message(), r)
	}
}
