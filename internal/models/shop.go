package models

import "time"

const (
	ShopStatusPending  = "pending"
	ShopStatusApproved = "approved"
	ShopStatusRejected = "rejected"
)

type Shop struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Address     string    `gorm:"size:255" json:"address"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	Status      string    `gorm:"size:20;default:'pending';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
