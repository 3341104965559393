// Command seed loads a demo shop with an owner, barbers and a price list.
package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/peluqueria-scheduler/internal/db"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

const demoPassword = "demo1234"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}

	if err := seed(context.Background(), db, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}
	logger.Info().Str("password", demoPassword).Msg("seed complete")
}

func seed(ctx context.Context, db *gorm.DB, logger zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	shop := models.Shop{
		Name:    "Peluqueria Centro",
		Address: "Av. San Martin 1200, Mendoza",
		Status:  models.ShopStatusApproved,
	}
	if err := db.WithContext(ctx).Where(models.Shop{Name: shop.Name}).FirstOrCreate(&shop).Error; err != nil {
		return err
	}

	users := []models.User{
		{Username: "admin", Name: "Administrador", Role: models.RoleAdmin},
		{Username: "dueno", Name: "Dueno Centro", Role: models.RoleOwner, ShopID: &shop.ID},
		{Username: "cliente", Name: "Cliente Demo", Role: models.RoleClient},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&users).Error; err != nil {
		return err
	}

	barbers := repository.NewBarberGormRepository(db)
	for _, name := range []string{"Juan", "Martin"} {
		user := &models.User{
			Username:     "peluquero." + strings.ToLower(name),
			Name:         name,
			PasswordHash: string(hash),
		}
		b, err := barbers.CreateBarberAccount(ctx, shop.ID, user)
		if err != nil {
			if errors.Is(err, repository.ErrUsernameTaken) {
				continue
			}
			return err
		}
		logger.Info().Str("username", user.Username).Uint("barber_id", b.ID).Msg("barber created")
	}

	price := func(v float64) *float64 { return &v }
	services := []models.ShopService{
		{ShopID: shop.ID, Name: "Corte", Price: price(8000)},
		{ShopID: shop.ID, Name: "Corte y barba", Price: price(11000)},
		{ShopID: shop.ID, Name: "Barba", Price: price(5000)},
		{ShopID: shop.ID, Name: "Consulta"},
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&services).Error
}
