package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/metrics"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// CancelAppointment deletes a booking on behalf of an authorized actor.
type CancelAppointment struct {
	repo   domain.Repository
	authz  domain.Authorizer
	cache  domain.AvailabilityCache
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	authz domain.Authorizer,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		authz:  authz,
		cache:  cache,
		audit:  audit,
		logger: logger.With().Str("usecase", "cancel_appointment").Logger(),
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) (*models.Appointment, error) {

	if appointmentID == 0 || actorID == 0 {
		return nil, domain.ErrMissingFields
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	actor, err := uc.repo.GetActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !uc.authz.CanCancel(*actor, ap) {
		return nil, domain.ErrForbidden
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.BarberID, ap.Date)
	metrics.IncBookingCancelled()

	uc.audit.Dispatch(audit.Event{
		ShopID:   ap.ShopID,
		UserID:   &actorID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"date": ap.Date, "time": ap.Time, "role": actor.Role},
	})

	uc.logger.Info().
		Uint("appointment_id", ap.ID).
		Uint("actor_id", actorID).
		Msg("appointment cancelled")

	return ap, nil
}
