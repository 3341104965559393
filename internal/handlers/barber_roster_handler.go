package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// BarberRosterHandler creates and removes the barbers of a shop.
type BarberRosterHandler struct {
	barbers *repository.BarberGormRepository
	staff   staff
	cache   domain.AvailabilityCache
	audit   *audit.Dispatcher
	logger  zerolog.Logger
}

func NewBarberRosterHandler(
	barbers *repository.BarberGormRepository,
	actors actorSource,
	authz *access.Service,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *BarberRosterHandler {
	return &BarberRosterHandler{
		barbers: barbers,
		staff:   staff{actors: actors, authz: authz},
		cache:   cache,
		audit:   audit,
		logger:  logger.With().Str("handler", "barber_roster").Logger(),
	}
}

type CreateBarberRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=100"`
	ShopID   *uint  `json:"shop_id"`
}

func (h *BarberRosterHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, shopID, err := h.staff.shopFor(c, req.ShopID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	user := &models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashed),
	}

	barber, err := h.barbers.CreateBarberAccount(c.Request.Context(), shopID, user)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &actor.UserID,
		Action:   audit.ActionBarberCreated,
		Entity:   "barber",
		EntityID: &barber.ID,
		Metadata: map[string]string{"username": user.Username},
	})

	h.logger.Info().
		Uint("shop_id", shopID).
		Uint("barber_id", barber.ID).
		Msg("barber created")

	httpresp.Created(c, dto.NewBarberDTO(*barber))
}

func (h *BarberRosterHandler) Delete(c *gin.Context) {
	barberID, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	actor, barber, err := h.staff.managedBarber(c, barberID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.barbers.DeleteBarber(ctx, barber.ShopID, barber.ID); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.cache.InvalidateBarber(ctx, barber.ID)

	h.audit.Dispatch(audit.Event{
		ShopID:   barber.ShopID,
		UserID:   &actor.UserID,
		Action:   audit.ActionBarberDeleted,
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	httpresp.Done(c)
}
