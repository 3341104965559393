package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/middleware"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

type MeHandler struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewMeHandler(db *gorm.DB, logger zerolog.Logger) *MeHandler {
	return &MeHandler{
		db:     db,
		logger: logger.With().Str("handler", "me").Logger(),
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Sesion invalida.")
			return
		}
		httperr.Respond(c, h.logger, err)
		return
	}

	barberID, err := lookupBarberID(db, user)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	resp := gin.H{"user": dto.NewUserDTO(user, barberID)}

	if user.ShopID != nil {
		var shop models.Shop
		if err := db.First(&shop, *user.ShopID).Error; err == nil {
			resp["shop"] = shop
		}
	}

	c.JSON(http.StatusOK, resp)
}
