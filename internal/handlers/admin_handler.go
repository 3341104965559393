package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/middleware"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// AdminHandler serves the platform operations reserved to admins: shop
// lifecycle and owner accounts. Routes must be behind RequireRoles(admin).
type AdminHandler struct {
	shops   *repository.ShopGormRepository
	users   *repository.UserGormRepository
	barbers *repository.BarberGormRepository
	cache   domain.AvailabilityCache
	audit   *audit.Dispatcher
	logger  zerolog.Logger
}

func NewAdminHandler(
	shops *repository.ShopGormRepository,
	users *repository.UserGormRepository,
	barbers *repository.BarberGormRepository,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		shops:   shops,
		users:   users,
		barbers: barbers,
		cache:   cache,
		audit:   audit,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

type CreateShopRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"required,max=255"`
	Description string `json:"description" binding:"max=500"`
}

type CreateOwnerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=dueno duenovip"`
	ShopID   uint   `json:"shop_id" binding:"required"`
}

type ConvertUserRequest struct {
	Username string `json:"username" binding:"required"`
	ShopID   uint   `json:"shop_id" binding:"required"`
}

type OwnerRoleRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=dueno duenovip"`
}

// ======================================================
// SHOPS
// ======================================================

func (h *AdminHandler) CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop := &models.Shop{
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.shops.CreateShop(c.Request.Context(), shop); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.record(c, shop.ID, audit.ActionShopCreated, "shop", shop.ID, map[string]string{"name": shop.Name})
	httpresp.Created(c, shop)
}

func (h *AdminHandler) DeleteShop(c *gin.Context) {
	shopID, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	barberIDs, err := h.shops.DeleteShop(ctx, shopID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	for _, id := range barberIDs {
		h.cache.InvalidateBarber(ctx, id)
	}

	h.record(c, shopID, audit.ActionShopDeleted, "shop", shopID, map[string]int{"barbers": len(barberIDs)})
	h.logger.Info().
		Uint("shop_id", shopID).
		Int("barbers", len(barberIDs)).
		Msg("shop deleted")

	httpresp.Done(c)
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) CreateOwner(c *gin.Context) {
	var req CreateOwnerRequest
	if !bindJSON(c, &req) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleOwner
	}

	user := &models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := h.users.CreateOwner(c.Request.Context(), req.ShopID, user); err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.record(c, req.ShopID, audit.ActionOwnerCreated, "user", user.ID, map[string]string{"username": user.Username})
	httpresp.Created(c, dto.NewUserDTO(*user, nil))
}

func (h *AdminHandler) ConvertToBarber(c *gin.Context) {
	var req ConvertUserRequest
	if !bindJSON(c, &req) {
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	barber, err := h.barbers.ConvertToBarber(c.Request.Context(), req.ShopID, username)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.record(c, req.ShopID, audit.ActionUserConverted, "barber", barber.ID, map[string]string{"username": username})
	httpresp.Created(c, dto.NewBarberDTO(*barber))
}

// ListOwners lists plain owners, or VIP owners with ?role=duenovip.
func (h *AdminHandler) ListOwners(c *gin.Context) {
	role := models.RoleOwner
	if c.Query("role") == models.RoleOwnerVIP {
		role = models.RoleOwnerVIP
	}

	owners, err := h.users.ListOwners(c.Request.Context(), role)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	out := make([]dto.UserDTO, 0, len(owners))
	for _, u := range owners {
		out = append(out, dto.NewUserDTO(u, nil))
	}
	httpresp.List(c, out)
}

func (h *AdminHandler) SetOwnerRole(c *gin.Context) {
	var req OwnerRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.SetOwnerRole(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Username)), req.Role)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var shopID uint
	if user.ShopID != nil {
		shopID = *user.ShopID
	}
	h.record(c, shopID, audit.ActionOwnerRoleChanged, "user", user.ID, map[string]string{"role": user.Role})
	httpresp.OK(c, dto.NewUserDTO(*user, nil))
}

func (h *AdminHandler) record(c *gin.Context, shopID uint, action, entity string, entityID uint, meta any) {
	actorID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &actorID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: meta,
	})
}
