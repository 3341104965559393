package repository

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// BarberGormRepository manages the barber roster of a shop and each
// barber's slot templates.
type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

func (r *BarberGormRepository) ListBarbers(
	ctx context.Context,
	shopID uint,
) ([]models.Barber, error) {

	barbers := []models.Barber{}
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("time ASC")
		}).
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// GetShopBarber returns ErrBarberNotFound when the barber is missing or
// belongs to another shop.
func (r *BarberGormRepository) GetShopBarber(
	ctx context.Context,
	shopID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ? AND shop_id = ?", barberID, shopID).
		First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBarberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

// CreateBarberAccount stores a new barber login for the shop together with
// its barber row and the default slot templates.
func (r *BarberGormRepository) CreateBarberAccount(
	ctx context.Context,
	shopID uint,
	user *models.User,
) (*models.Barber, error) {

	var barber *models.Barber

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.Role = models.RoleBarber
		user.ShopID = &shopID
		if err := tx.Create(user).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return err
		}

		var err error
		barber, err = provisionBarber(tx, *user, shopID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return barber, nil
}

// ConvertToBarber turns an existing client account into a barber of the
// shop with the default slot templates.
func (r *BarberGormRepository) ConvertToBarber(
	ctx context.Context,
	shopID uint,
	username string,
) (*models.Barber, error) {

	var barber *models.Barber

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := shopExists(tx, shopID); err != nil {
			return err
		}

		var user models.User
		err := tx.Where("username = ?", username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		switch user.Role {
		case models.RoleClient:
		case models.RoleBarber:
			return ErrAlreadyBarber
		default:
			return ErrNotClient
		}

		if err := tx.Model(&user).Updates(map[string]any{
			"role":    models.RoleBarber,
			"shop_id": shopID,
		}).Error; err != nil {
			return err
		}
		user.Role = models.RoleBarber
		user.ShopID = &shopID

		barber, err = provisionBarber(tx, user, shopID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return barber, nil
}

func provisionBarber(tx *gorm.DB, user models.User, shopID uint) (*models.Barber, error) {
	barber := models.Barber{UserID: user.ID, ShopID: shopID}
	for _, at := range models.DefaultSlotTimes {
		barber.Slots = append(barber.Slots, models.BarberSlot{Time: at})
	}
	if err := tx.Create(&barber).Error; err != nil {
		return nil, err
	}
	barber.User = user
	return &barber, nil
}

// DeleteBarber removes the barber with its slots and appointments and
// demotes the user back to a client.
func (r *BarberGormRepository) DeleteBarber(
	ctx context.Context,
	shopID uint,
	barberID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		err := tx.Where("id = ? AND shop_id = ?", barberID, shopID).First(&barber).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBarberNotFound
		}
		if err != nil {
			return err
		}

		if _, err := NewAppointmentGormRepository(tx).DeleteBarberAppointments(ctx, barber.ID); err != nil {
			return err
		}
		if err := tx.Where("barber_id = ?", barber.ID).Delete(&models.BarberSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&barber).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", barber.UserID).
			Updates(map[string]any{"role": models.RoleClient, "shop_id": nil}).Error
	})
}

// ReplaceSlots swaps the barber's templates for times. Duplicates are
// collapsed and the stored order is ascending.
func (r *BarberGormRepository) ReplaceSlots(
	ctx context.Context,
	barberID uint,
	times []string,
) ([]string, error) {

	clean := slices.Clone(times)
	slices.Sort(clean)
	clean = slices.Compact(clean)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.BarberSlot{}).Error; err != nil {
			return err
		}
		if len(clean) == 0 {
			return nil
		}

		rows := make([]models.BarberSlot, 0, len(clean))
		for _, at := range clean {
			rows = append(rows, models.BarberSlot{BarberID: barberID, Time: at})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return clean, nil
}
