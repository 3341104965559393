package models

import "time"

// ShopService is an entry of a shop's price list. Price is optional.
type ShopService struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"not null;uniqueIndex:idx_shop_service_name,priority:1" json:"shop_id"`

	Name  string   `gorm:"size:100;not null;uniqueIndex:idx_shop_service_name,priority:2" json:"name"`
	Price *float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
