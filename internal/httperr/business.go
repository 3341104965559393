package httperr

import "errors"

// Kind classifies business rejections. Everything that is not a
// BusinessError is treated as an unexpected failure.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindPastDate      Kind = "past_date_error"
	KindPastTime      Kind = "past_time_error"
	KindInvalidSlot   Kind = "invalid_slot_error"
	KindSlotConflict  Kind = "slot_conflict_error"
	KindConflict      Kind = "conflict_error"
	KindNotFound      Kind = "not_found_error"
	KindAuthorization Kind = "authorization_error"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

// KindOf returns the kind of a business error and false for anything else.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}

// CodeOf returns the code of a business error and false for anything else.
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
