// Package validators registers the custom binding tags used by request
// structs and turns validation failures into per-field messages.
package validators

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
)

const (
	TagCivilDate = "civildate"
	TagClockTime = "clocktime"
)

var once sync.Once

// Register installs the civildate and clocktime tags on gin's validator.
func Register() error {
	var err error
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("validators: unexpected binding engine")
			return
		}
		err = Install(v)
	})
	return err
}

// Install adds the custom tags to v and reports json field names.
func Install(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.Split(f.Tag.Get(tag), ",")[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	if err := v.RegisterValidation(TagCivilDate, isCivilDate); err != nil {
		return err
	}
	return v.RegisterValidation(TagClockTime, isClockTime)
}

func isCivilDate(fl validator.FieldLevel) bool {
	_, err := civil.ParseDate(fl.Field().String())
	return err == nil
}

func isClockTime(fl validator.FieldLevel) bool {
	_, err := civil.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// FieldErrors maps each failing field to a short message. It returns nil
// when err is not a validation failure.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case TagCivilDate:
		return "debe ser una fecha AAAA-MM-DD"
	case TagClockTime:
		return "debe ser una hora HH:MM"
	case "min", "gte":
		return "es demasiado corto o bajo"
	case "max", "lte":
		return "es demasiado largo o alto"
	default:
		return "es invalido"
	}
}
