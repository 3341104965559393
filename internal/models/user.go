package models

import "time"

const (
	RoleClient   = "cliente"
	RoleBarber   = "peluquero"
	RoleOwner    = "dueno"
	RoleOwnerVIP = "duenovip"
	RoleAdmin    = "admin"
)

func IsOwnerRole(role string) bool {
	return role == RoleOwner || role == RoleOwnerVIP
}

type User struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	ShopID *uint `gorm:"index" json:"shop_id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Name         string `gorm:"size:100;not null" json:"name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'cliente'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
