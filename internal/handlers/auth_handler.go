package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/middleware"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db        *gorm.DB
	jwtSecret string
	logger    zerolog.Logger
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		db:        db,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("handler", "auth").Logger(),
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates a client account. Staff accounts are created by owners.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	user := models.User{
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashed),
		Role:         models.RoleClient,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			err = repository.ErrUsernameTaken
		}
		httperr.Respond(c, h.logger, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user, nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	username := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	if err := h.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			invalidCredentials(c)
			return
		}
		httperr.Respond(c, h.logger, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		invalidCredentials(c)
		return
	}

	barberID, err := lookupBarberID(h.db.WithContext(ctx), user)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user, barberID)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user models.User, barberID *uint) {
	token, err := middleware.NewToken(h.jwtSecret, user.ID, user.Role, user.ShopID, tokenTTL)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(status, gin.H{
		"user":  dto.NewUserDTO(user, barberID),
		"token": token,
	})
}

func invalidCredentials(c *gin.Context) {
	httperr.Unauthorized(c, "invalid_credentials", "Usuario o contrasena incorrectos.")
}

// lookupBarberID returns nil for accounts that are not barbers.
func lookupBarberID(db *gorm.DB, user models.User) (*uint, error) {
	if user.Role != models.RoleBarber {
		return nil, nil
	}

	var barber models.Barber
	err := db.Where("user_id = ?", user.ID).First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &barber.ID, nil
}
