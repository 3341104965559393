package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/validators"
)

var errInvalidID = httperr.New(httperr.KindValidation, "invalid_id", "Identificador invalido.")

func pathID(c *gin.Context, name string) (uint, error) {
	return parseID(c.Param(name))
}

func queryID(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, domain.ErrMissingFields
	}
	return parseID(raw)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// bindJSON reports binding failures itself and returns false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.InvalidRequest(c, validators.FieldErrors(err))
		return false
	}
	return true
}
