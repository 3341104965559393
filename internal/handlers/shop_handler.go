package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// ShopHandler lets an owner read and edit the profile of their shop.
type ShopHandler struct {
	db     *gorm.DB
	staff  staff
	logger zerolog.Logger
}

func NewShopHandler(db *gorm.DB, actors actorSource, authz *access.Service, logger zerolog.Logger) *ShopHandler {
	return &ShopHandler{
		db:     db,
		staff:  staff{actors: actors, authz: authz},
		logger: logger.With().Str("handler", "shop").Logger(),
	}
}

type UpdateShopRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

func (h *ShopHandler) GetMine(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, shop)
}

func (h *ShopHandler) UpdateMine(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateShopRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).Model(shop).Updates(updates).Error; err != nil {
			httperr.Respond(c, h.logger, err)
			return
		}
	}

	httpresp.OK(c, shop)
}

func (h *ShopHandler) load(c *gin.Context) (*models.Shop, bool) {
	_, shopID, err := h.staff.shopFor(c, queryShopID(c))
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return nil, false
	}

	var shop models.Shop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errShopNotFound
		}
		httperr.Respond(c, h.logger, err)
		return nil, false
	}
	return &shop, true
}

// queryShopID reads the optional ?shop_id an admin uses to pick a shop.
func queryShopID(c *gin.Context) *uint {
	raw := c.Query("shop_id")
	if raw == "" {
		return nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil
	}
	return &id
}
