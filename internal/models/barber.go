package models

import "time"

// DefaultSlotTimes is the template every newly provisioned barber starts with.
var DefaultSlotTimes = []string{"09:00", "10:30", "12:00", "14:00", "15:30", "17:00", "18:30"}

type Barber struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ShopID uint `gorm:"not null;index" json:"shop_id"`

	Slots []BarberSlot `gorm:"constraint:OnDelete:CASCADE;" json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BarberSlot is one recurring daily time a barber offers.
type BarberSlot struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"not null;uniqueIndex:idx_barber_slot_time,priority:1" json:"barber_id"`
	Time     string `gorm:"size:5;not null;uniqueIndex:idx_barber_slot_time,priority:2" json:"time"`
}
