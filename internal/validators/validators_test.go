package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotsRequest struct {
	Date  string   `json:"date" validate:"omitempty,civildate"`
	Times []string `json:"times" validate:"required,dive,clocktime"`
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, Install(v))

	assert.NoError(t, v.Struct(slotsRequest{Date: "2030-01-10", Times: []string{"09:00", "18:30"}}))
	assert.NoError(t, v.Struct(slotsRequest{Times: []string{}}))

	err := v.Struct(slotsRequest{Date: "10/01/2030", Times: []string{"9:00"}})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "debe ser una fecha AAAA-MM-DD", fields["date"])
	assert.Equal(t, "debe ser una hora HH:MM", fields["times[0]"])
}

func TestRequiredMessage(t *testing.T) {
	v := validator.New()
	require.NoError(t, Install(v))

	fields := FieldErrors(v.Struct(slotsRequest{}))
	assert.Equal(t, "es obligatorio", fields["times"])
}

func TestRegisterOnGinEngine(t *testing.T) {
	assert.NoError(t, Register())
	assert.NoError(t, Register())
	assert.Nil(t, FieldErrors(nil))
}
