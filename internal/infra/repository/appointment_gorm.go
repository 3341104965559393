package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&barber, barberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBarberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetSlotTemplates(
	ctx context.Context,
	barberID uint,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.BarberSlot{}).
		Where("barber_id = ?", barberID).
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}

	// HH:MM sorts lexically
	slices.Sort(times)
	return times, nil
}

// --------------------------------------------------
// Service catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServicePrice(
	ctx context.Context,
	shopID uint,
	serviceName string,
) (*float64, error) {

	var svc models.ShopService
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND name = ?", shopID, serviceName).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return svc.Price, nil
}

// --------------------------------------------------
// Actor
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActor(
	ctx context.Context,
	userID uint,
) (*domain.Actor, error) {

	var user models.User
	err := r.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	actor := &domain.Actor{
		UserID: user.ID,
		Role:   user.Role,
		ShopID: user.ShopID,
	}

	if user.Role == models.RoleBarber {
		var barber models.Barber
		err := r.db.WithContext(ctx).
			Where("user_id = ?", user.ID).
			First(&barber).Error
		switch {
		case err == nil:
			actor.BarberID = &barber.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	return actor, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *AppointmentGormRepository) SlotTaken(
	ctx context.Context,
	barberID uint,
	date string,
	time string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ? AND time = ?", barberID, date, time).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Create(ap).Error
	if httperr.IsUniqueViolation(err) {
		return domain.ErrSlotConflict
	}
	return err
}

// --------------------------------------------------
// Cancellation / expiry
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).First(&ap, appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, appointmentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// DeleteBarberAppointments drops every booking of the barber. Roster
// changes call it on a repository bound to their transaction.
func (r *AppointmentGormRepository) DeleteBarberAppointments(
	ctx context.Context,
	barberID uint,
) (int64, error) {

	res := r.db.WithContext(ctx).Where("barber_id = ?", barberID).Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}

func (r *AppointmentGormRepository) DeleteShopAppointments(
	ctx context.Context,
	shopID uint,
) (int64, error) {

	res := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}

func (r *AppointmentGormRepository) DeleteAppointmentsBefore(
	ctx context.Context,
	date string,
) ([]dto.BarberDay, error) {

	var days []dto.BarberDay

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Distinct("shop_id", "barber_id", "date").
			Where("date < ?", date).
			Order("date ASC").
			Scan(&days).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Where("date < ?", date).Delete(&models.Appointment{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete appointments before %s: %w", date, err)
	}
	return days, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.AgendaEntryDTO, error) {

	out := []dto.AgendaEntryDTO{}
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select(`
			appointments.id,
			appointments.date,
			appointments.time,
			appointments.service,
			appointments.service_price,
			appointments.client_id,
			users.name AS client_name,
			appointments.created_at
		`).
		Joins("JOIN users ON users.id = appointments.client_id").
		Where("appointments.barber_id = ? AND appointments.date = ?", barberID, date).
		Order("appointments.time ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
	fromDate string,
) ([]dto.ClientAppointmentDTO, error) {

	out := []dto.ClientAppointmentDTO{}
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select(`
			appointments.id,
			appointments.date,
			appointments.time,
			appointments.service,
			appointments.shop_id,
			shops.name AS shop_name,
			appointments.barber_id,
			users.name AS barber_name
		`).
		Joins("JOIN shops ON shops.id = appointments.shop_id").
		Joins("JOIN barbers ON barbers.id = appointments.barber_id").
		Joins("JOIN users ON users.id = barbers.user_id").
		Where("appointments.client_id = ? AND appointments.date >= ?", clientID, fromDate).
		Order("appointments.date ASC, appointments.time ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountAppointmentsByMonth returns the latest limit months that have
// appointments, newest first.
func (r *AppointmentGormRepository) CountAppointmentsByMonth(
	ctx context.Context,
	barberID uint,
	limit int,
) ([]dto.MonthTotalDTO, error) {

	out := []dto.MonthTotalDTO{}
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("substr(date, 1, 7) AS month, COUNT(*) AS total").
		Where("barber_id = ?", barberID).
		Group("substr(date, 1, 7)").
		Order("month DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
