package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
)

const historyMonths = 6

// BarberHistory counts a barber's appointments per month, newest first.
type BarberHistory struct {
	repo  domain.Repository
	authz domain.Authorizer
}

func NewBarberHistory(repo domain.Repository, authz domain.Authorizer) *BarberHistory {
	return &BarberHistory{repo: repo, authz: authz}
}

func (uc *BarberHistory) Execute(
	ctx context.Context,
	actorID uint,
	barberID uint,
) ([]dto.MonthTotalDTO, error) {

	if err := authorizeAgenda(ctx, uc.repo, uc.authz, actorID, barberID); err != nil {
		return nil, err
	}
	return uc.repo.CountAppointmentsByMonth(ctx, barberID, historyMonths)
}
