package repository

import "github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"

var (
	ErrUsernameTaken = httperr.New(httperr.KindConflict, "username_taken", "El usuario ya existe.")
	ErrUserNotFound  = httperr.New(httperr.KindNotFound, "user_not_found", "Usuario no encontrado.")
	ErrShopNotFound  = httperr.New(httperr.KindNotFound, "shop_not_found", "Peluqueria no encontrada.")
	ErrAlreadyBarber = httperr.New(httperr.KindConflict, "already_barber", "El usuario ya es peluquero.")
	ErrNotClient     = httperr.New(httperr.KindConflict, "not_a_client", "Solo un cliente puede pasar a peluquero.")
	ErrNotOwner      = httperr.New(httperr.KindConflict, "not_an_owner", "El usuario no es dueno.")
	ErrInvalidRole   = httperr.New(httperr.KindValidation, "invalid_role", "Rol invalido.")
)
