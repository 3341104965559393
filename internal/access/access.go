// Package access holds the permission rules for appointment operations.
package access

import (
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

type Service struct {
	logger zerolog.Logger
}

func NewService(logger zerolog.Logger) *Service {
	return &Service{
		logger: logger.With().Str("component", "access").Logger(),
	}
}

// CanCancel allows the booking client, the assigned barber, the owner of
// the shop and any admin.
func (s *Service) CanCancel(actor domain.Actor, ap *models.Appointment) bool {
	allowed := actor.IsAdmin() ||
		actor.UserID == ap.ClientID ||
		actor.IsBarber(ap.BarberID) ||
		actor.IsOwnerOf(ap.ShopID)

	if !allowed {
		s.logger.Info().
			Uint("actor_id", actor.UserID).
			Str("role", actor.Role).
			Uint("appointment_id", ap.ID).
			Msg("cancel denied")
	}
	return allowed
}

// CanViewAgenda allows the barber, the owner of the barber's shop and
// any admin.
func (s *Service) CanViewAgenda(actor domain.Actor, barber *models.Barber) bool {
	return actor.IsAdmin() ||
		actor.IsBarber(barber.ID) ||
		actor.IsOwnerOf(barber.ShopID)
}

// CanManageShop allows the shop's owner and admins.
func (s *Service) CanManageShop(actor domain.Actor, shopID uint) bool {
	return actor.IsAdmin() || actor.IsOwnerOf(shopID)
}

var _ domain.Authorizer = (*Service)(nil)
