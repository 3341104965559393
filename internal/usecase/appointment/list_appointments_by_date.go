package appointment

import (
	"context"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
)

// ListAppointmentsByDate is a barber's agenda for one day.
type ListAppointmentsByDate struct {
	repo  domain.Repository
	authz domain.Authorizer
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	authz domain.Authorizer,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:  repo,
		authz: authz,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actorID uint,
	barberID uint,
	date string,
) ([]dto.AgendaEntryDTO, error) {

	if barberID == 0 || date == "" {
		return nil, domain.ErrMissingFields
	}
	day, err := civil.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	if err := authorizeAgenda(ctx, uc.repo, uc.authz, actorID, barberID); err != nil {
		return nil, err
	}

	return uc.repo.ListAppointmentsForDay(ctx, barberID, day.String())
}

func authorizeAgenda(
	ctx context.Context,
	repo domain.Repository,
	authz domain.Authorizer,
	actorID uint,
	barberID uint,
) error {

	barber, err := repo.GetBarber(ctx, barberID)
	if err != nil {
		return err
	}
	actor, err := repo.GetActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !authz.CanViewAgenda(*actor, barber) {
		return domain.ErrForbidden
	}
	return nil
}
