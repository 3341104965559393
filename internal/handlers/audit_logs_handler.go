package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db     *gorm.DB
	staff  staff
	logger zerolog.Logger
}

func NewAuditLogsHandler(db *gorm.DB, actors actorSource, authz *access.Service, logger zerolog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{
		db:     db,
		staff:  staff{actors: actors, authz: authz},
		logger: logger.With().Str("handler", "audit_logs").Logger(),
	}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	_, shopID, err := h.staff.shopFor(c, queryShopID(c))
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Always scoped to one shop
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("shop_id = ?", shopID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	// from/to are civil days; to is inclusive
	if from, err := civil.ParseDate(c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", dayStart(from))
	}
	if to, err := civil.ParseDate(c.Query("to")); err == nil {
		q = q.Where("created_at < ?", dayStart(to.AddDays(1)))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

func dayStart(d civil.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}
