package appointment

import "github.com/BruksfildServices01/peluqueria-scheduler/internal/models"

// Actor is the account performing an operation, with the ownership links
// needed for permission checks.
type Actor struct {
	UserID   uint
	Role     string
	ShopID   *uint
	BarberID *uint
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

func (a Actor) IsOwnerOf(shopID uint) bool {
	return models.IsOwnerRole(a.Role) && a.ShopID != nil && *a.ShopID == shopID
}

func (a Actor) IsBarber(barberID uint) bool {
	return a.Role == models.RoleBarber && a.BarberID != nil && *a.BarberID == barberID
}
