package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

func TestCreateShopIsApproved(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewShopGormRepository(gdb)

	shop := &models.Shop{Name: "Nueva", Address: "Belgrano 20", Status: models.ShopStatusPending}
	require.NoError(t, repo.CreateShop(context.Background(), shop))
	assert.NotZero(t, shop.ID)

	var stored models.Shop
	require.NoError(t, gdb.First(&stored, shop.ID).Error)
	assert.Equal(t, models.ShopStatusApproved, stored.Status)
}

func TestDeleteShopCascades(t *testing.T) {
	gdb := dbtest.Open(t)
	f := dbtest.Seed(t, gdb, "09:00", "10:30")
	ctx := context.Background()

	appts := NewAppointmentGormRepository(gdb)
	book(t, appts, f, "2030-01-10", "09:00")
	price := 1500.0
	require.NoError(t, gdb.Create(&models.ShopService{ShopID: f.Shop.ID, Name: "Corte", Price: &price}).Error)

	// a second shop stays untouched
	otherShop := models.Shop{Name: "Otra", Address: "Mitre 5", Status: models.ShopStatusApproved}
	require.NoError(t, gdb.Create(&otherShop).Error)
	otherBarber, err := NewBarberGormRepository(gdb).CreateBarberAccount(ctx, otherShop.ID, &models.User{
		Username: "otro", Name: "Otro", PasswordHash: "x",
	})
	require.NoError(t, err)

	var ids []uint
	ids, err = NewShopGormRepository(gdb).DeleteShop(ctx, f.Shop.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.Barber.ID}, ids)

	count := func(model any, where string, args ...any) int64 {
		var n int64
		require.NoError(t, gdb.Model(model).Where(where, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&models.Shop{}, "id = ?", f.Shop.ID))
	assert.Zero(t, count(&models.Appointment{}, "shop_id = ?", f.Shop.ID))
	assert.Zero(t, count(&models.Barber{}, "shop_id = ?", f.Shop.ID))
	assert.Zero(t, count(&models.BarberSlot{}, "barber_id = ?", f.Barber.ID))
	assert.Zero(t, count(&models.ShopService{}, "shop_id = ?", f.Shop.ID))
	assert.Zero(t, count(&models.User{}, "shop_id = ?", f.Shop.ID))

	var barberUser, owner models.User
	require.NoError(t, gdb.First(&barberUser, f.Barber.UserID).Error)
	assert.Equal(t, models.RoleClient, barberUser.Role)
	require.NoError(t, gdb.First(&owner, f.Owner.ID).Error)
	assert.Equal(t, models.RoleOwner, owner.Role)
	assert.Nil(t, owner.ShopID)

	assert.EqualValues(t, 1, count(&models.Barber{}, "shop_id = ?", otherShop.ID))
	assert.EqualValues(t, len(models.DefaultSlotTimes), count(&models.BarberSlot{}, "barber_id = ?", otherBarber.ID))
}

func TestDeleteShopNotFound(t *testing.T) {
	gdb := dbtest.Open(t)
	_, err := NewShopGormRepository(gdb).DeleteShop(context.Background(), 42)
	assert.ErrorIs(t, err, ErrShopNotFound)
}
