package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// ShopGormRepository covers the admin lifecycle of shops.
type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

// CreateShop stores a shop that is bookable right away.
func (r *ShopGormRepository) CreateShop(ctx context.Context, shop *models.Shop) error {
	shop.Status = models.ShopStatusApproved
	return r.db.WithContext(ctx).Create(shop).Error
}

// DeleteShop removes the shop with its appointments, barbers, slot
// templates and price list. Barber accounts go back to clients and every
// other member loses the shop link. It returns the ids of the removed
// barbers so their cached availability can be dropped.
func (r *ShopGormRepository) DeleteShop(ctx context.Context, shopID uint) ([]uint, error) {
	var barberIDs []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := shopExists(tx, shopID); err != nil {
			return err
		}

		if err := tx.Model(&models.Barber{}).
			Where("shop_id = ?", shopID).
			Pluck("id", &barberIDs).Error; err != nil {
			return err
		}

		if _, err := NewAppointmentGormRepository(tx).DeleteShopAppointments(ctx, shopID); err != nil {
			return err
		}

		if len(barberIDs) > 0 {
			if err := tx.Where("barber_id IN ?", barberIDs).Delete(&models.BarberSlot{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", barberIDs).Delete(&models.Barber{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("shop_id = ?", shopID).Delete(&models.ShopService{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("shop_id = ? AND role = ?", shopID, models.RoleBarber).
			Updates(map[string]any{"role": models.RoleClient, "shop_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("shop_id = ?", shopID).
			Update("shop_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Shop{}, shopID).Error
	})
	if err != nil {
		return nil, err
	}
	return barberIDs, nil
}

func shopExists(tx *gorm.DB, shopID uint) error {
	var shop models.Shop
	err := tx.Select("id").First(&shop, shopID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrShopNotFound
	}
	return err
}
