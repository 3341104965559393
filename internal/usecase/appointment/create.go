package appointment

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/metrics"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID uint
	ShopID   uint
	BarberID uint

	Date    string
	Time    string
	Service string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment reserves one slot. The unique index over
// (barber, date, time) decides races; a loser gets ErrSlotConflict.
type CreateAppointment struct {
	repo   domain.Repository
	cache  domain.AvailabilityCache
	clock  timezone.Clock
	audit  *audit.Dispatcher
	retry  RetryPolicy
	logger zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	retry RetryPolicy,
	logger zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		cache:  cache,
		clock:  clock,
		audit:  audit,
		retry:  retry,
		logger: logger.With().Str("usecase", "create_appointment").Logger(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.execute(ctx, in)
	if err != nil {
		uc.record(in, err)
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.BarberID, ap.Date)
	metrics.IncBookingOutcome("created")

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &in.ClientID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"date": ap.Date, "time": ap.Time},
	})

	uc.logger.Info().
		Uint("appointment_id", ap.ID).
		Uint("barber_id", ap.BarberID).
		Str("date", ap.Date).
		Str("time", ap.Time).
		Msg("appointment booked")

	return ap, nil
}

func (uc *CreateAppointment) execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1) Required fields
	// --------------------------------------------------
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	if in.ClientID == 0 || in.ShopID == 0 || in.BarberID == 0 || in.Date == "" || in.Time == "" {
		return nil, domain.ErrMissingFields
	}

	date, err := civil.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	at, err := civil.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	service := strings.TrimSpace(in.Service)
	if service == "" {
		service = domain.DefaultService
	}

	// --------------------------------------------------
	// 2) + 3) Temporal guards
	// --------------------------------------------------
	now := uc.clock.Now()
	if civil.IsPastDate(date, now) {
		return nil, domain.ErrPastDate
	}
	if civil.IsElapsed(date, at, now) {
		return nil, domain.ErrPastTime
	}

	var ap *models.Appointment

	err = uc.retry.run(ctx, uc.logger, func() error {
		// --------------------------------------------------
		// 4) Slot belongs to the barber's templates
		// --------------------------------------------------
		barber, err := uc.repo.GetBarber(ctx, in.BarberID)
		if err != nil {
			return err
		}
		if barber.ShopID != in.ShopID {
			return domain.ErrBarberNotFound
		}

		templates, err := uc.repo.GetSlotTemplates(ctx, in.BarberID)
		if err != nil {
			return err
		}
		if !slices.Contains(templates, at.String()) {
			return domain.ErrInvalidSlot
		}

		// --------------------------------------------------
		// 5) Fast conflict check; the insert decides races
		// --------------------------------------------------
		taken, err := uc.repo.SlotTaken(ctx, in.BarberID, date.String(), at.String())
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotConflict
		}

		price, err := uc.repo.GetServicePrice(ctx, in.ShopID, service)
		if err != nil {
			return err
		}

		candidate := &models.Appointment{
			ShopID:       in.ShopID,
			BarberID:     in.BarberID,
			ClientID:     in.ClientID,
			Date:         date.String(),
			Time:         at.String(),
			Service:      service,
			ServicePrice: price,
		}

		if err := uc.repo.CreateAppointment(ctx, candidate); err != nil {
			if httperr.IsUniqueViolation(err) {
				return domain.ErrSlotConflict
			}
			return writeOnce(err)
		}

		ap = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ap, nil
}

func (uc *CreateAppointment) record(in CreateAppointmentInput, err error) {
	code, ok := httperr.CodeOf(err)
	if !ok {
		metrics.IncBookingOutcome("error")
		uc.logger.Error().Err(err).Uint("barber_id", in.BarberID).Msg("booking failed")
		return
	}

	metrics.IncBookingOutcome(code)

	if code == domain.CodeSlotConflict {
		uc.audit.Dispatch(audit.Event{
			ShopID:   in.ShopID,
			UserID:   &in.ClientID,
			Action:   audit.ActionAppointmentConflict,
			Entity:   "appointment",
			Metadata: map[string]any{"barber_id": in.BarberID, "date": in.Date, "time": in.Time},
		})
	}
}
