package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// InvalidRequest reports a body or query that failed binding, with the
// offending fields when known.
func InvalidRequest(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, struct {
		HTTPError
		Fields map[string]string `json:"fields,omitempty"`
	}{
		HTTPError: HTTPError{Code: "invalid_request", Message: "Datos invalidos.", Kind: KindValidation},
		Fields:    fields,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// StatusFor maps a business kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindSlotConflict, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// Respond writes err as a structured response. Business errors keep their
// code and message; anything else is logged and hidden behind a 500.
func Respond(c *gin.Context, logger zerolog.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		logger.Debug().
			Str("kind", string(be.Kind)).
			Str("code", be.Code).
			Str("path", c.FullPath()).
			Msg("request rejected")

		c.JSON(StatusFor(be.Kind), HTTPError{
			Code:    be.Code,
			Message: be.Message,
			Kind:    be.Kind,
		})
		return
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("unexpected error")

	Internal(c, "internal_error", "Error de servidor.")
}
