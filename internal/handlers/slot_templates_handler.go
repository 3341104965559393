package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
)

// SlotTemplatesHandler reads and replaces the recurring daily times a
// barber offers.
type SlotTemplatesHandler struct {
	barbers *repository.BarberGormRepository
	staff   staff
	cache   domain.AvailabilityCache
	audit   *audit.Dispatcher
	logger  zerolog.Logger
}

func NewSlotTemplatesHandler(
	barbers *repository.BarberGormRepository,
	actors actorSource,
	authz *access.Service,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *SlotTemplatesHandler {
	return &SlotTemplatesHandler{
		barbers: barbers,
		staff:   staff{actors: actors, authz: authz},
		cache:   cache,
		audit:   audit,
		logger:  logger.With().Str("handler", "slot_templates").Logger(),
	}
}

type ReplaceSlotsRequest struct {
	Times []string `json:"times" binding:"required,dive,clocktime"`
}

func (h *SlotTemplatesHandler) List(c *gin.Context) {
	barberID, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.staff.actors.GetBarber(ctx, barberID); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	times, err := h.staff.actors.GetSlotTemplates(ctx, barberID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"barber_id": barberID, "times": times})
}

func (h *SlotTemplatesHandler) Replace(c *gin.Context) {
	barberID, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var req ReplaceSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, barber, err := h.staff.managedBarber(c, barberID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	times, err := h.barbers.ReplaceSlots(ctx, barber.ID, req.Times)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	// every cached day of this barber was resolved from the old templates
	h.cache.InvalidateBarber(ctx, barber.ID)

	h.audit.Dispatch(audit.Event{
		ShopID:   barber.ShopID,
		UserID:   &actor.UserID,
		Action:   audit.ActionSlotsReplaced,
		Entity:   "barber",
		EntityID: &barber.ID,
		Metadata: map[string]any{"times": times},
	})

	c.JSON(http.StatusOK, gin.H{"barber_id": barber.ID, "times": times})
}
