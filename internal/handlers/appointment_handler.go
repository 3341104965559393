package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/middleware"
	ucappointment "github.com/BruksfildServices01/peluqueria-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucappointment.CreateAppointment
	cancel     *ucappointment.CancelAppointment
	listByDate *ucappointment.ListAppointmentsByDate
	listClient *ucappointment.ListClientAppointments
	history    *ucappointment.BarberHistory
	logger     zerolog.Logger
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	cancel *ucappointment.CancelAppointment,
	listByDate *ucappointment.ListAppointmentsByDate,
	listClient *ucappointment.ListClientAppointments,
	history *ucappointment.BarberHistory,
	logger zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		cancel:     cancel,
		listByDate: listByDate,
		listClient: listClient,
		history:    history,
		logger:     logger.With().Str("handler", "appointments").Logger(),
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Field checks are left to the booking use case so that rejections come
// back in its order.
type CreateAppointmentRequest struct {
	ShopID   uint   `json:"shop_id"`
	BarberID uint   `json:"barber_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Service  string `json:"service"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		ClientID: middleware.UserID(c),
		ShopID:   req.ShopID,
		BarberID: req.BarberID,
		Date:     req.Date,
		Time:     req.Time,
		Service:  req.Service,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Created(c, gin.H{"ok": true, "appointment": ap})
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	if _, err := h.cancel.Execute(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Done(c)
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, err := queryID(c, "barber_id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	agenda, err := h.listByDate.Execute(c.Request.Context(), middleware.UserID(c), barberID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.List(c, agenda)
}

func (h *AppointmentHandler) ListForClient(c *gin.Context) {
	mine, err := h.listClient.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.List(c, mine)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	barberID, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	months, err := h.history.Execute(c.Request.Context(), middleware.UserID(c), barberID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.List(c, months)
}
