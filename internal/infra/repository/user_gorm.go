package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/httperr"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// UserGormRepository manages owner accounts on behalf of an admin.
type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// CreateOwner stores user as an owner of the shop. user.Role must be one
// of the owner roles.
func (r *UserGormRepository) CreateOwner(ctx context.Context, shopID uint, user *models.User) error {
	if !models.IsOwnerRole(user.Role) {
		return ErrInvalidRole
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := shopExists(tx, shopID); err != nil {
			return err
		}

		user.ShopID = &shopID
		if err := tx.Create(user).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	})
}

// ListOwners returns the accounts holding role, ordered by username.
func (r *UserGormRepository) ListOwners(ctx context.Context, role string) ([]models.User, error) {
	if !models.IsOwnerRole(role) {
		return nil, ErrInvalidRole
	}

	owners := []models.User{}
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("username ASC").
		Find(&owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}

// SetOwnerRole switches an owner between the plain and VIP tiers.
func (r *UserGormRepository) SetOwnerRole(ctx context.Context, username, role string) (*models.User, error) {
	if !models.IsOwnerRole(role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if !models.IsOwnerRole(user.Role) {
			return ErrNotOwner
		}
		if err := tx.Model(&user).Update("role", role).Error; err != nil {
			return err
		}
		user.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
