package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

var (
	errServiceNotFound = httperr.New(httperr.KindNotFound, "service_not_found", "Servicio no encontrado.")
	errServiceExists   = httperr.New(httperr.KindConflict, "service_exists", "El servicio ya existe.")
)

// ServiceCatalogHandler maintains a shop's price list.
type ServiceCatalogHandler struct {
	db     *gorm.DB
	staff  staff
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewServiceCatalogHandler(
	db *gorm.DB,
	actors actorSource,
	authz *access.Service,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{
		db:     db,
		staff:  staff{actors: actors, authz: authz},
		audit:  audit,
		logger: logger.With().Str("handler", "service_catalog").Logger(),
	}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name   string   `json:"name" binding:"required,max=100"`
	Price  *float64 `json:"price" binding:"omitempty,gte=0"`
	ShopID *uint    `json:"shop_id"`
}

// UpdateServiceRequest leaves absent fields untouched. ClearPrice removes
// the price, since a null price cannot be told apart from an absent one.
type UpdateServiceRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Price      *float64 `json:"price" binding:"omitempty,gte=0"`
	ClearPrice bool     `json:"clear_price"`
}

// --------- Handlers ---------

func (h *ServiceCatalogHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, shopID, err := h.staff.shopFor(c, req.ShopID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	svc := models.ShopService{
		ShopID: shopID,
		Name:   strings.TrimSpace(req.Name),
		Price:  req.Price,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Respond(c, h.logger, h.mapErr(err))
		return
	}

	h.record(actor.UserID, audit.ActionServiceCreated, svc)
	httpresp.Created(c, svc)
}

func (h *ServiceCatalogHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, svc, ok := h.load(c)
	if !ok {
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	switch {
	case req.ClearPrice:
		updates["price"] = nil
	case req.Price != nil:
		updates["price"] = *req.Price
	}

	if len(updates) > 0 {
		db := h.db.WithContext(c.Request.Context())
		if err := db.Model(svc).Updates(updates).Error; err != nil {
			httperr.Respond(c, h.logger, h.mapErr(err))
			return
		}
		var fresh models.ShopService
		if err := db.First(&fresh, svc.ID).Error; err != nil {
			httperr.Respond(c, h.logger, err)
			return
		}
		svc = &fresh
	}

	h.record(actor.UserID, audit.ActionServiceUpdated, *svc)
	httpresp.OK(c, svc)
}

func (h *ServiceCatalogHandler) Delete(c *gin.Context) {
	actor, svc, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(svc).Error; err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.record(actor.UserID, audit.ActionServiceDeleted, *svc)
	httpresp.Done(c)
}

// load fetches the service named in the path and checks the actor manages
// its shop.
func (h *ServiceCatalogHandler) load(c *gin.Context) (*domain.Actor, *models.ShopService, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return nil, nil, false
	}

	var svc models.ShopService
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = errServiceNotFound
		}
		httperr.Respond(c, h.logger, err)
		return nil, nil, false
	}

	actor, err := h.staff.canManage(c, svc.ShopID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return nil, nil, false
	}
	return actor, &svc, true
}

func (h *ServiceCatalogHandler) mapErr(err error) error {
	if httperr.IsUniqueViolation(err) {
		return errServiceExists
	}
	return err
}

func (h *ServiceCatalogHandler) record(userID uint, action string, svc models.ShopService) {
	h.audit.Dispatch(audit.Event{
		ShopID:   svc.ShopID,
		UserID:   &userID,
		Action:   action,
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: map[string]string{"name": svc.Name},
	})
}
