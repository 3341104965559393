// Package dbtest opens throwaway SQLite databases with the production
// schema for repository and handler tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/db"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

var seq atomic.Int64

// Open returns a migrated in-memory database private to the test.
// A single connection keeps SQLite from reporting table locks when tests
// run goroutines against it.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return gdb
}

// Fixture is a small approved shop with one owner, one barber and one client.
type Fixture struct {
	Shop   models.Shop
	Owner  models.User
	Barber models.Barber
	Client models.User
}

const Password = "secret123"

// Seed creates a Fixture whose barber offers the given slot times.
func Seed(t *testing.T, gdb *gorm.DB, slotTimes ...string) Fixture {
	t.Helper()

	var f Fixture
	f.Shop = models.Shop{Name: "Barberia Central", Address: "San Martin 100", Status: models.ShopStatusApproved}
	must(t, gdb.Create(&f.Shop).Error)

	f.Owner = NewUser(t, gdb, "owner", models.RoleOwner, &f.Shop.ID)
	barberUser := NewUser(t, gdb, "barber", models.RoleBarber, &f.Shop.ID)
	f.Client = NewUser(t, gdb, "client", models.RoleClient, nil)

	f.Barber = models.Barber{UserID: barberUser.ID, ShopID: f.Shop.ID}
	must(t, gdb.Create(&f.Barber).Error)
	f.Barber.User = barberUser

	for _, at := range slotTimes {
		must(t, gdb.Create(&models.BarberSlot{BarberID: f.Barber.ID, Time: at}).Error)
	}
	return f
}

// NewUser stores a user whose password is Password.
func NewUser(t *testing.T, gdb *gorm.DB, username, role string, shopID *uint) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	must(t, err)

	u := models.User{
		Username:     username,
		Name:         strings.ToUpper(username[:1]) + username[1:],
		PasswordHash: string(hash),
		Role:         role,
		ShopID:       shopID,
	}
	must(t, gdb.Create(&u).Error)
	return u
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
}
