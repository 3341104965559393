package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
)

// ListClientAppointments returns a client's bookings from today on.
type ListClientAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListClientAppointments(repo domain.Repository, clock timezone.Clock) *ListClientAppointments {
	return &ListClientAppointments{repo: repo, clock: clock}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.ClientAppointmentDTO, error) {

	if clientID == 0 {
		return nil, domain.ErrMissingFields
	}
	return uc.repo.ListAppointmentsForClient(ctx, clientID, timezone.Today(uc.clock).String())
}
