package appointment

import "github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"

// ===============================
// Booking rejections
// ===============================

const (
	CodeMissingFields       = "missing_fields"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidTime         = "invalid_time"
	CodePastDate            = "past_date"
	CodePastTime            = "past_time"
	CodeInvalidSlot         = "invalid_slot"
	CodeSlotConflict        = "slot_conflict"
	CodeBarberNotFound      = "barber_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeForbidden           = "forbidden"
)

var (
	ErrMissingFields       = httperr.New(httperr.KindValidation, CodeMissingFields, "Faltan datos.")
	ErrInvalidDate         = httperr.New(httperr.KindValidation, CodeInvalidDate, "Fecha invalida.")
	ErrInvalidTime         = httperr.New(httperr.KindValidation, CodeInvalidTime, "Hora invalida.")
	ErrPastDate            = httperr.New(httperr.KindPastDate, CodePastDate, "Fecha pasada.")
	ErrPastTime            = httperr.New(httperr.KindPastTime, CodePastTime, "Horario pasado.")
	ErrInvalidSlot         = httperr.New(httperr.KindInvalidSlot, CodeInvalidSlot, "Horario invalido.")
	ErrSlotConflict        = httperr.New(httperr.KindSlotConflict, CodeSlotConflict, "Horario ocupado.")
	ErrBarberNotFound      = httperr.New(httperr.KindNotFound, CodeBarberNotFound, "Peluquero no encontrado.")
	ErrAppointmentNotFound = httperr.New(httperr.KindNotFound, CodeAppointmentNotFound, "Turno no encontrado.")
	ErrForbidden           = httperr.New(httperr.KindAuthorization, CodeForbidden, "Sin permisos.")
)
