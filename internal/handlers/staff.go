package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/middleware"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

type actorSource interface {
	GetActor(ctx context.Context, userID uint) (*domain.Actor, error)
	GetBarber(ctx context.Context, barberID uint) (*models.Barber, error)
	GetSlotTemplates(ctx context.Context, barberID uint) ([]string, error)
}

// staff resolves which shop a management request targets. Owners always
// act on their own shop; admins name it explicitly.
type staff struct {
	actors actorSource
	authz  *access.Service
}

func (s staff) actor(c *gin.Context) (*domain.Actor, error) {
	return s.actors.GetActor(c.Request.Context(), middleware.UserID(c))
}

func (s staff) shopFor(c *gin.Context, requested *uint) (*domain.Actor, uint, error) {
	actor, err := s.actor(c)
	if err != nil {
		return nil, 0, err
	}

	var shopID uint
	switch {
	case actor.IsAdmin():
		if requested == nil || *requested == 0 {
			return nil, 0, domain.ErrMissingFields
		}
		shopID = *requested
	case actor.ShopID != nil:
		shopID = *actor.ShopID
	}

	if shopID == 0 || !s.authz.CanManageShop(*actor, shopID) {
		return nil, 0, domain.ErrForbidden
	}
	return actor, shopID, nil
}

// canManage checks the actor against a shop already known from a record.
func (s staff) canManage(c *gin.Context, shopID uint) (*domain.Actor, error) {
	actor, err := s.actor(c)
	if err != nil {
		return nil, err
	}
	if !s.authz.CanManageShop(*actor, shopID) {
		return nil, domain.ErrForbidden
	}
	return actor, nil
}

// managedBarber loads a barber and checks the actor may manage its shop.
func (s staff) managedBarber(c *gin.Context, barberID uint) (*domain.Actor, *models.Barber, error) {
	barber, err := s.actors.GetBarber(c.Request.Context(), barberID)
	if err != nil {
		return nil, nil, err
	}
	actor, err := s.canManage(c, barber.ShopID)
	if err != nil {
		return nil, nil, err
	}
	return actor, barber, nil
}
