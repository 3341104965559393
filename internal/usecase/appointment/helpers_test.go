package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/access"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
)

const (
	today    = "2026-10-19"
	tomorrow = "2026-10-20"
)

// noon on today in the shop's zone
func testClock() timezone.FixedClock {
	loc := timezone.Location(timezone.DefaultTimezone)
	return timezone.FixedClock(time.Date(2026, time.October, 19, 12, 0, 0, 0, loc))
}

type env struct {
	db    *gorm.DB
	f     dbtest.Fixture
	repo  domain.Repository
	cache domain.AvailabilityCache
	authz *access.Service
	clock timezone.Clock
}

func newEnv(t *testing.T, slotTimes ...string) *env {
	t.Helper()
	gdb := dbtest.Open(t)
	return &env{
		db:    gdb,
		f:     dbtest.Seed(t, gdb, slotTimes...),
		repo:  repository.NewAppointmentGormRepository(gdb),
		cache: cache.NoopCache{},
		authz: access.NewService(zerolog.Nop()),
		clock: testClock(),
	}
}

func (e *env) withRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	e.cache = cache.NewRedisAvailabilityCache(rdb, time.Minute, zerolog.Nop())
	return mr
}

func (e *env) availability() *GetAvailability {
	return NewGetAvailability(e.repo, e.cache, e.clock, zerolog.Nop())
}

func (e *env) creator() *CreateAppointment {
	return NewCreateAppointment(e.repo, e.cache, e.clock, nil, RetryPolicy{Attempts: 3}, zerolog.Nop())
}

func (e *env) canceller() *CancelAppointment {
	return NewCancelAppointment(e.repo, e.authz, e.cache, nil, zerolog.Nop())
}

func (e *env) input(clientID uint, date, at string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientID: clientID,
		ShopID:   e.f.Shop.ID,
		BarberID: e.f.Barber.ID,
		Date:     date,
		Time:     at,
	}
}

func (e *env) clients(t *testing.T, n int) []models.User {
	t.Helper()
	out := make([]models.User, n)
	for i := range out {
		out[i] = dbtest.NewUser(t, e.db, fmt.Sprintf("c%d", i), models.RoleClient, nil)
	}
	return out
}

// insert bypasses the booking rules for seeding past data.
func (e *env) insert(t *testing.T, date, at string) models.Appointment {
	t.Helper()
	ap := models.Appointment{
		ShopID: e.f.Shop.ID, BarberID: e.f.Barber.ID, ClientID: e.f.Client.ID,
		Date: date, Time: at, Service: domain.DefaultService,
	}
	if err := e.db.Create(&ap).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	return ap
}

var ctx = context.Background()
