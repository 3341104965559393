package appointment

import "github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"

type AvailabilityInput struct {
	BarberID uint
	Date     string
}

// Reason explains an empty availability result.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonPastDate    Reason = "past_date"
	ReasonNoSlots     Reason = "no_slots_configured"
	ReasonFullyBooked Reason = "fully_booked"
	ReasonAllElapsed  Reason = "all_elapsed"
)

var reasonMessages = map[Reason]string{
	ReasonPastDate:    "No podes elegir fechas pasadas.",
	ReasonNoSlots:     "El peluquero no tiene horarios configurados.",
	ReasonFullyBooked: "No hay horarios disponibles.",
	ReasonAllElapsed:  "Los horarios de hoy ya pasaron.",
}

func (r Reason) Message() string {
	return reasonMessages[r]
}

type Availability struct {
	Date   string   `json:"date"`
	Slots  []string `json:"slots"`
	Reason Reason   `json:"reason,omitempty"`
}

// Message is the user-facing text for an empty result.
func (a Availability) Message() string {
	return a.Reason.Message()
}

// ResolveSlots filters a barber's templates down to bookable times.
//
// templates must already be valid HH:MM values; booked holds the times
// taken on date. When nothing is left the reason tells which rule emptied
// the list: no templates, every template booked, or the free ones have
// already started today.
func ResolveSlots(templates []civil.TimeOfDay, booked map[string]struct{}, date civil.Date, today civil.Date, now civil.TimeOfDay) ([]string, Reason) {
	if date.Before(today) {
		return []string{}, ReasonPastDate
	}
	if len(templates) == 0 {
		return []string{}, ReasonNoSlots
	}

	slots := make([]string, 0, len(templates))
	free := 0
	for _, at := range templates {
		key := at.String()
		if _, taken := booked[key]; taken {
			continue
		}
		free++
		if date.Equal(today) && at.Compare(now) <= 0 {
			continue
		}
		slots = append(slots, key)
	}

	switch {
	case len(slots) > 0:
		return slots, ReasonNone
	case free == 0:
		return slots, ReasonFullyBooked
	default:
		return slots, ReasonAllElapsed
	}
}
