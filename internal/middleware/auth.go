package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextShopID   = "shopID"
	ContextUserRole = "userRole"
)

// NewToken signs an HS256 token carrying the account id, role and, for
// shop members, the shop id.
func NewToken(secret string, userID uint, role string, shopID *uint, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	if shopID != nil {
		claims["shopId"] = *shopID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Inicia sesion.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Inicia sesion.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sesion invalida.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sesion invalida.")
			c.Abort()
			return
		}

		userID, ok := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !ok || userID <= 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Sesion invalida.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)
		if shopID, ok := claims["shopId"].(float64); ok && shopID > 0 {
			c.Set(ContextShopID, uint(shopID))
		}

		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
// It must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Sin permisos.")
		c.Abort()
	}
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}

func UserRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

// ShopID is nil for accounts that belong to no shop.
func ShopID(c *gin.Context) *uint {
	v, ok := c.Get(ContextShopID)
	if !ok {
		return nil
	}
	id := v.(uint)
	return &id
}
