package dto

import "github.com/BruksfildServices01/peluqueria-scheduler/internal/models"

type BarberDTO struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	ShopID uint     `json:"shop_id"`
	Slots  []string `json:"slots"`
}

func NewBarberDTO(b models.Barber) BarberDTO {
	slots := make([]string, 0, len(b.Slots))
	for _, s := range b.Slots {
		slots = append(slots, s.Time)
	}
	return BarberDTO{
		ID:     b.ID,
		Name:   b.User.Name,
		ShopID: b.ShopID,
		Slots:  slots,
	}
}

type UserDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	ShopID   *uint  `json:"shop_id"`
	BarberID *uint  `json:"barber_id,omitempty"`
}

func NewUserDTO(u models.User, barberID *uint) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		ShopID:   u.ShopID,
		BarberID: barberID,
	}
}
