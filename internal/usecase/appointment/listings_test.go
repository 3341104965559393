package appointment

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

func TestListAppointmentsByDate(t *testing.T) {
	e := newEnv(t)
	e.insert(t, tomorrow, "14:00")
	e.insert(t, tomorrow, "09:00")

	list := NewListAppointmentsByDate(e.repo, e.authz)

	agenda, err := list.Execute(ctx, e.f.Barber.UserID, e.f.Barber.ID, tomorrow)
	require.NoError(t, err)
	require.Len(t, agenda, 2)
	assert.Equal(t, "09:00", agenda[0].Time)

	agenda, err = list.Execute(ctx, e.f.Owner.ID, e.f.Barber.ID, tomorrow)
	require.NoError(t, err)
	assert.Len(t, agenda, 2)

	_, err = list.Execute(ctx, e.f.Client.ID, e.f.Barber.ID, tomorrow)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = list.Execute(ctx, e.f.Owner.ID, e.f.Barber.ID, "tomorrow")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestListClientAppointmentsFromToday(t *testing.T) {
	e := newEnv(t)
	e.insert(t, "2026-10-18", "09:00")
	e.insert(t, today, "09:00")
	e.insert(t, tomorrow, "09:00")

	list := NewListClientAppointments(e.repo, e.clock)
	mine, err := list.Execute(ctx, e.f.Client.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, today, mine[0].Date)
	assert.Equal(t, tomorrow, mine[1].Date)
}

func TestBarberHistory(t *testing.T) {
	e := newEnv(t)
	e.insert(t, "2026-09-01", "09:00")
	e.insert(t, "2026-10-01", "09:00")
	e.insert(t, "2026-10-02", "09:00")

	h := NewBarberHistory(e.repo, e.authz)
	months, err := h.Execute(ctx, e.f.Owner.ID, e.f.Barber.ID)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2026-10", months[0].Month)
	assert.Equal(t, 2, months[0].Total)

	_, err = h.Execute(ctx, e.f.Client.ID, e.f.Barber.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSweepExpired(t *testing.T) {
	e := newEnv(t)
	e.insert(t, "2026-10-17", "09:00")
	e.insert(t, "2026-10-18", "09:00")
	e.insert(t, "2026-10-18", "10:30")
	e.insert(t, today, "09:00")

	dispatcher := audit.NewDispatcher(audit.New(e.db), zerolog.Nop())
	sweep := NewSweepExpired(e.repo, e.cache, e.clock, dispatcher, zerolog.Nop())

	n, err := sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, dispatcher.Close(ctx))

	var left []models.Appointment
	require.NoError(t, e.db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, today, left[0].Date)

	var logs []models.AuditLog
	require.NoError(t, e.db.Where("action = ?", audit.ActionAppointmentsExpired).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, e.f.Shop.ID, logs[0].ShopID)

	n, err = sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuditRecordsBookingAndConflict(t *testing.T) {
	e := newEnv(t, "09:00")
	other := dbtest.NewUser(t, e.db, "other", models.RoleClient, nil)

	dispatcher := audit.NewDispatcher(audit.New(e.db), zerolog.Nop())
	create := NewCreateAppointment(e.repo, e.cache, e.clock, dispatcher, DefaultRetryPolicy, zerolog.Nop())

	_, err := create.Execute(ctx, e.input(e.f.Client.ID, tomorrow, "09:00"))
	require.NoError(t, err)
	_, err = create.Execute(ctx, e.input(other.ID, tomorrow, "09:00"))
	require.ErrorIs(t, err, domain.ErrSlotConflict)

	require.NoError(t, dispatcher.Close(ctx))

	var actions []string
	require.NoError(t, e.db.Model(&models.AuditLog{}).Order("id").Pluck("action", &actions).Error)
	assert.Equal(t, []string{audit.ActionAppointmentCreated, audit.ActionAppointmentConflict}, actions)
}
