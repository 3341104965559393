package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
	ucappointment "github.com/BruksfildServices01/peluqueria-scheduler/internal/usecase/appointment"
)

// PublicHandler serves what a visitor needs before booking: shops, their
// barbers and services, and free slots.
type PublicHandler struct {
	db           *gorm.DB
	barbers      *repository.BarberGormRepository
	availability *ucappointment.GetAvailability
	logger       zerolog.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	barbers *repository.BarberGormRepository,
	availability *ucappointment.GetAvailability,
	logger zerolog.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		barbers:      barbers,
		availability: availability,
		logger:       logger.With().Str("handler", "public").Logger(),
	}
}

var errShopNotFound = httperr.New(httperr.KindNotFound, "shop_not_found", "Peluqueria no encontrada.")

func (h *PublicHandler) ListShops(c *gin.Context) {
	shops := []models.Shop{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("status = ?", models.ShopStatusApproved).
		Order("name ASC").
		Find(&shops).Error; err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.List(c, shops)
}

func (h *PublicHandler) ListShopBarbers(c *gin.Context) {
	shopID, ok := h.approvedShop(c)
	if !ok {
		return
	}

	barbers, err := h.barbers.ListBarbers(c.Request.Context(), shopID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	out := make([]dto.BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, dto.NewBarberDTO(b))
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) ListShopServices(c *gin.Context) {
	shopID, ok := h.approvedShop(c)
	if !ok {
		return
	}

	services := []models.ShopService{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, err := queryID(c, "barber_id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	av, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID: barberID,
		Date:     c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    av.Date,
		"slots":   av.Slots,
		"reason":  av.Reason,
		"message": av.Message(),
	})
}

func (h *PublicHandler) approvedShop(c *gin.Context) (uint, bool) {
	shopID, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return 0, false
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Shop{}).
		Where("id = ? AND status = ?", shopID, models.ShopStatusApproved).
		Count(&count).Error; err != nil {
		httperr.Respond(c, h.logger, err)
		return 0, false
	}
	if count == 0 {
		httperr.Respond(c, h.logger, errShopNotFound)
		return 0, false
	}
	return shopID, true
}
