package dto

import "time"

type AgendaEntryDTO struct {
	ID           uint      `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Service      string    `json:"service"`
	ServicePrice *float64  `json:"service_price"`
	ClientID     uint      `json:"client_id"`
	ClientName   string    `json:"client"`
	CreatedAt    time.Time `json:"created_at"`
}

type ClientAppointmentDTO struct {
	ID         uint   `json:"id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Service    string `json:"service"`
	ShopID     uint   `json:"shop_id"`
	ShopName   string `json:"shop"`
	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber"`
}

type MonthTotalDTO struct {
	Month string `json:"month"`
	Total int    `json:"total"`
}

// BarberDay identifies one barber's agenda on one date.
type BarberDay struct {
	ShopID   uint
	BarberID uint
	Date     string
}
