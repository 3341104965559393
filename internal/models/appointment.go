package models

import "time"

// Appointment is one reserved slot. The unique index over
// (barber_id, date, time) is the final arbiter against double booking.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint `gorm:"not null;index" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID uint   `gorm:"not null;uniqueIndex:idx_appointment_slot,priority:1" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// civil date YYYY-MM-DD and wall-clock HH:MM
	Date string `gorm:"size:10;not null;index;uniqueIndex:idx_appointment_slot,priority:2" json:"date"`
	Time string `gorm:"size:5;not null;uniqueIndex:idx_appointment_slot,priority:3" json:"time"`

	Service      string   `gorm:"size:100;not null" json:"service"`
	ServicePrice *float64 `json:"service_price"`

	CreatedAt time.Time `json:"created_at"`
}
