package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
)

func TestAvailabilityBookingScenario(t *testing.T) {
	e := newEnv(t, "09:00", "10:30")
	get := e.availability()

	av, err := get.Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30"}, av.Slots)
	assert.Empty(t, av.Reason)

	_, err = e.creator().Execute(ctx, e.input(e.f.Client.ID, tomorrow, "09:00"))
	require.NoError(t, err)

	av, err = get.Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, av.Slots)
}

func TestAvailabilityBookingScenarioWithCache(t *testing.T) {
	e := newEnv(t, "09:00", "10:30")
	e.withRedis(t)
	get := e.availability()

	in := domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: tomorrow}

	av, err := get.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30"}, av.Slots)

	// served from cache now
	av, err = get.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30"}, av.Slots)

	_, err = e.creator().Execute(ctx, e.input(e.f.Client.ID, tomorrow, "09:00"))
	require.NoError(t, err)

	av, err = get.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, av.Slots, "a committed booking is never served from cache")
}

func TestAvailabilityAfterFailedInvalidation(t *testing.T) {
	e := newEnv(t, "09:00", "10:30")
	mr := e.withRedis(t)
	get := e.availability()

	in := domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: tomorrow}

	av, err := get.Execute(ctx, in)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "10:30"}, av.Slots)

	// redis rejects the version bump while the booking commits
	mr.SetError("LOADING redis is loading")
	_, err = e.creator().Execute(ctx, e.input(e.f.Client.ID, tomorrow, "09:00"))
	require.NoError(t, err)
	mr.SetError("")

	av, err = get.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, av.Slots)
	assert.NotContains(t, av.Slots, "09:00")
}

func TestAvailabilityToday(t *testing.T) {
	e := newEnv(t, "09:00", "12:00", "15:30")

	av, err := e.availability().Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"15:30"}, av.Slots)

	e.insert(t, today, "15:30")

	av, err = e.availability().Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: today})
	require.NoError(t, err)
	assert.Empty(t, av.Slots)
	assert.Equal(t, domain.ReasonAllElapsed, av.Reason)
}

func TestAvailabilityReasons(t *testing.T) {
	e := newEnv(t, "09:00")
	get := e.availability()

	av, err := get.Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: "2026-10-18"})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonPastDate, av.Reason)
	assert.NotNil(t, av.Slots)

	av, err = get.Execute(ctx, domain.AvailabilityInput{BarberID: 999, Date: tomorrow})
	require.NoError(t, err)
	assert.Empty(t, av.Slots)
	assert.Equal(t, domain.ReasonNoSlots, av.Reason)

	e.insert(t, tomorrow, "09:00")
	av, err = get.Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonFullyBooked, av.Reason)
}

func TestAvailabilityRejectsBadInput(t *testing.T) {
	e := newEnv(t)
	get := e.availability()

	_, err := get.Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID})
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = get.Execute(ctx, domain.AvailabilityInput{BarberID: e.f.Barber.ID, Date: "20-10-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
